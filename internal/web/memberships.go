package web

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// planReturnPaths - куда вернуться после создания плана из модального окна
var planReturnPaths = map[string]bool{
	"/ui/members":     true,
	"/ui/trainers":    true,
	"/ui/memberships": true,
}

func membershipText(m dto.MembershipResponse) string {
	return m.Title + " " + m.PackageType
}

func (p *Pages) Memberships(c *gin.Context, s *Session) {
	p.renderMemberships(c, s, http.StatusOK, nil)
}

func (p *Pages) renderMemberships(c *gin.Context, s *Session, status int, formErr error) {
	data := gin.H{}
	if formErr != nil {
		data["FormError"] = errorMessage(c, formErr)
	}
	plans, err := p.services.MembershipService.List(p.GetDB(c), s.GymFilter())
	if err != nil {
		data["Error"] = errorMessage(c, err)
		plans = []dto.MembershipResponse{}
	}
	data["List"] = NewListView(plans, pageParam(c), c.Query("q"), membershipText)
	p.render(c, status, "memberships", s, data)
}

// CreateMembership - модальное окно плана со страниц участников, тренеров и планов
func (p *Pages) CreateMembership(c *gin.Context, s *Session) {
	var req dto.CreateMembershipRequest
	err := p.bindForm(c, &req, func() { req.GymID = s.GymID })
	if err == nil {
		_, err = p.services.MembershipService.Create(p.GetDB(c), &req)
	}
	if err != nil {
		p.renderMemberships(c, s, errorStatus(err), err)
		return
	}

	next := c.PostForm("next")
	if !planReturnPaths[next] {
		next = "/ui/memberships"
	}
	c.Redirect(http.StatusSeeOther, next+"?page=1")
}

func (p *Pages) DeleteMembership(c *gin.Context, s *Session) {
	id, ok := paramID(c)
	if !ok {
		p.renderMemberships(c, s, http.StatusNotFound, apperrors.ErrMembershipNotFound)
		return
	}
	db := p.GetDB(c)
	plan, err := p.services.MembershipService.Get(db, id)
	if err == nil && !s.Owns(plan.GymID) {
		err = apperrors.ErrMembershipNotFound
	}
	if err == nil {
		err = p.services.MembershipService.Delete(db, id)
	}
	if err != nil {
		p.renderMemberships(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/memberships?page=1")
}
