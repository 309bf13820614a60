package web

import (
	"fmt"
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/validator"
	"gym_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

func memberText(m dto.MemberResponse) string {
	return m.Name + " " + m.MobileNo + " " + m.Plan
}

func (p *Pages) Members(c *gin.Context, s *Session) {
	p.renderMembers(c, s, http.StatusOK, nil)
}

// renderMembers - список; formErr показывается баннером над формой добавления
func (p *Pages) renderMembers(c *gin.Context, s *Session, status int, formErr error) {
	db := p.GetDB(c)
	data := gin.H{}
	if formErr != nil {
		data["FormError"] = errorMessage(c, formErr)
	}

	members, err := p.services.MemberService.List(db, s.GymFilter())
	if err != nil {
		data["Error"] = errorMessage(c, err)
		members = []dto.MemberResponse{}
	}
	data["List"] = NewListView(members, pageParam(c), c.Query("q"), memberText)

	plans, err := p.services.MembershipService.List(db, s.GymFilter())
	if err == nil {
		data["Plans"] = plans
	}
	trainers, err := p.services.TrainerService.List(db, s.GymFilter())
	if err == nil {
		data["Trainers"] = trainers
	}

	p.render(c, status, "members", s, data)
}

// CreateMember - форма модального окна; при успехе список загружается заново
func (p *Pages) CreateMember(c *gin.Context, s *Session) {
	var req dto.CreateMemberRequest
	err := p.bindForm(c, &req, func() {
		req.GymID = s.GymID
		req.ProfilePic = nil
		req.MembershipID = nonZero(req.MembershipID)
		req.TrainerID = nonZero(req.TrainerID)
	})
	if err != nil {
		p.renderMembers(c, s, errorStatus(err), err)
		return
	}

	url, err := p.formAvatar(c)
	if err != nil {
		p.renderMembers(c, s, errorStatus(err), err)
		return
	}
	if url != "" {
		req.ProfilePic = &url
	}

	if _, err := p.services.MemberService.Create(p.GetDB(c), &req); err != nil {
		p.renderMembers(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/members?page=1")
}

// ownedMember - участник из пути; участник чужого зала не найден
func (p *Pages) ownedMember(c *gin.Context, s *Session) (*dto.MemberResponse, error) {
	id, ok := paramID(c)
	if !ok {
		return nil, apperrors.ErrMemberNotFound
	}
	member, err := p.services.MemberService.Get(p.GetDB(c), id)
	if err != nil {
		return nil, err
	}
	if !s.Owns(member.GymID) {
		return nil, apperrors.ErrMemberNotFound
	}
	return member, nil
}

func (p *Pages) MemberDetail(c *gin.Context, s *Session) {
	p.renderMemberDetail(c, s, http.StatusOK, nil)
}

// renderMemberDetail - карточка, подписки и форма редактирования
func (p *Pages) renderMemberDetail(c *gin.Context, s *Session, status int, formErr error) {
	member, err := p.ownedMember(c, s)
	if err != nil {
		p.render(c, errorStatus(err), "member_detail", s, gin.H{"Error": errorMessage(c, err)})
		return
	}

	data := gin.H{
		"Member":   member,
		"Statuses": validator.AllowedValues(validator.TagMemberStatus),
	}
	if formErr != nil {
		data["FormError"] = errorMessage(c, formErr)
	}
	subs, err := p.services.SubscriptionService.List(p.GetDB(c), &dto.SubscriptionQuery{MemberID: &member.ID})
	if err != nil {
		data["Error"] = errorMessage(c, err)
	} else {
		data["Subscriptions"] = subs
	}
	p.render(c, status, "member_detail", s, data)
}

// UpdateMember - форма редактирования на карточке участника
func (p *Pages) UpdateMember(c *gin.Context, s *Session) {
	member, err := p.ownedMember(c, s)
	if err != nil {
		p.render(c, errorStatus(err), "member_detail", s, gin.H{"Error": errorMessage(c, err)})
		return
	}

	patch, err := p.formPatch(c, dto.MemberUpdateFields)
	if err == nil {
		_, err = p.services.MemberService.Update(p.GetDB(c), member.ID, patch)
	}
	if err != nil {
		p.renderMemberDetail(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/ui/members/%d", member.ID))
}

// DeleteMember - после подтверждения в диалоге; затем первая страница
func (p *Pages) DeleteMember(c *gin.Context, s *Session) {
	member, err := p.ownedMember(c, s)
	if err == nil {
		err = p.services.MemberService.Delete(p.GetDB(c), member.ID)
	}
	if err != nil {
		p.renderMembers(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/members?page=1")
}

// nonZero: пустой select формы приходит как 0
func nonZero(v *uint) *uint {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}
