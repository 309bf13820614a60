package web

import (
	"fmt"
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/internal/validator"
	"gym_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ---------------------------------------------------------------------------
// Оборудование
// ---------------------------------------------------------------------------

func equipmentText(e dto.EquipmentResponse) string {
	text := e.Name + " " + e.Status + " " + e.Condition
	if e.Category != nil {
		text += " " + *e.Category
	}
	if e.Location != nil {
		text += " " + *e.Location
	}
	return text
}

func (p *Pages) Equipment(c *gin.Context, s *Session) {
	p.renderEquipment(c, s, http.StatusOK, nil)
}

func (p *Pages) renderEquipment(c *gin.Context, s *Session, status int, formErr error) {
	data := gin.H{}
	if formErr != nil {
		data["FormError"] = errorMessage(c, formErr)
	}
	items, err := p.services.EquipmentService.List(p.GetDB(c), s.GymFilter())
	if err != nil {
		data["Error"] = errorMessage(c, err)
		items = []dto.EquipmentResponse{}
	}
	data["List"] = NewListView(items, pageParam(c), c.Query("q"), equipmentText)
	p.render(c, status, "equipment", s, data)
}

func (p *Pages) CreateEquipment(c *gin.Context, s *Session) {
	var req dto.CreateEquipmentRequest
	if err := p.bindForm(c, &req, func() { req.GymID = s.GymID }); err != nil {
		p.renderEquipment(c, s, errorStatus(err), err)
		return
	}
	if _, err := p.services.EquipmentService.Create(p.GetDB(c), &req); err != nil {
		p.renderEquipment(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/equipment?page=1")
}

func (p *Pages) ownedEquipment(c *gin.Context, s *Session) (*dto.EquipmentResponse, error) {
	id, ok := paramID(c)
	if !ok {
		return nil, apperrors.ErrEquipmentNotFound
	}
	item, err := p.services.EquipmentService.Get(p.GetDB(c), id)
	if err != nil {
		return nil, err
	}
	if !s.Owns(item.GymID) {
		return nil, apperrors.ErrEquipmentNotFound
	}
	return item, nil
}

func (p *Pages) EquipmentDetail(c *gin.Context, s *Session) {
	p.renderEquipmentDetail(c, s, http.StatusOK, nil)
}

func (p *Pages) renderEquipmentDetail(c *gin.Context, s *Session, status int, formErr error) {
	item, err := p.ownedEquipment(c, s)
	if err != nil {
		p.render(c, errorStatus(err), "equipment_detail", s, gin.H{"Error": errorMessage(c, err)})
		return
	}
	data := gin.H{
		"Item":       item,
		"Statuses":   validator.AllowedValues(validator.TagEquipmentStatus),
		"Conditions": validator.AllowedValues(validator.TagEquipmentCondition),
	}
	if formErr != nil {
		data["FormError"] = errorMessage(c, formErr)
	}
	p.render(c, status, "equipment_detail", s, data)
}

func (p *Pages) UpdateEquipment(c *gin.Context, s *Session) {
	item, err := p.ownedEquipment(c, s)
	if err != nil {
		p.render(c, errorStatus(err), "equipment_detail", s, gin.H{"Error": errorMessage(c, err)})
		return
	}

	patch, err := p.formPatch(c, dto.EquipmentUpdateFields)
	if err == nil {
		_, err = p.services.EquipmentService.Update(p.GetDB(c), item.ID, patch)
	}
	if err != nil {
		p.renderEquipmentDetail(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/ui/equipment/%d", item.ID))
}

func (p *Pages) DeleteEquipment(c *gin.Context, s *Session) {
	item, err := p.ownedEquipment(c, s)
	if err == nil {
		err = p.services.EquipmentService.Delete(p.GetDB(c), item.ID)
	}
	if err != nil {
		p.renderEquipment(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/equipment?page=1")
}

// ---------------------------------------------------------------------------
// Тренеры
// ---------------------------------------------------------------------------

func trainerText(t dto.TrainerResponse) string {
	return t.Name + " " + t.MobileNo + " " + t.Degree
}

func (p *Pages) Trainers(c *gin.Context, s *Session) {
	p.renderTrainers(c, s, http.StatusOK, nil)
}

func (p *Pages) renderTrainers(c *gin.Context, s *Session, status int, formErr error) {
	data := gin.H{}
	if formErr != nil {
		data["FormError"] = errorMessage(c, formErr)
	}
	trainers, err := p.services.TrainerService.List(p.GetDB(c), s.GymFilter())
	if err != nil {
		data["Error"] = errorMessage(c, err)
		trainers = []dto.TrainerResponse{}
	}
	data["List"] = NewListView(trainers, pageParam(c), c.Query("q"), trainerText)
	p.render(c, status, "trainers", s, data)
}

func (p *Pages) CreateTrainer(c *gin.Context, s *Session) {
	var req dto.CreateTrainerRequest
	err := p.bindForm(c, &req, func() {
		req.GymID = s.GymID
		req.ProfilePic = nil
	})
	if err != nil {
		p.renderTrainers(c, s, errorStatus(err), err)
		return
	}

	url, err := p.formAvatar(c)
	if err != nil {
		p.renderTrainers(c, s, errorStatus(err), err)
		return
	}
	if url != "" {
		req.ProfilePic = &url
	}

	if _, err := p.services.TrainerService.Create(p.GetDB(c), &req); err != nil {
		p.renderTrainers(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/trainers?page=1")
}

func (p *Pages) ownedTrainer(c *gin.Context, s *Session) (*dto.TrainerResponse, error) {
	id, ok := paramID(c)
	if !ok {
		return nil, apperrors.ErrTrainerNotFound
	}
	trainer, err := p.services.TrainerService.Get(p.GetDB(c), id)
	if err != nil {
		return nil, err
	}
	if !s.Owns(trainer.GymID) {
		return nil, apperrors.ErrTrainerNotFound
	}
	return trainer, nil
}

func (p *Pages) TrainerDetail(c *gin.Context, s *Session) {
	p.renderTrainerDetail(c, s, http.StatusOK, nil)
}

func (p *Pages) renderTrainerDetail(c *gin.Context, s *Session, status int, formErr error) {
	trainer, err := p.ownedTrainer(c, s)
	if err != nil {
		p.render(c, errorStatus(err), "trainer_detail", s, gin.H{"Error": errorMessage(c, err)})
		return
	}
	data := gin.H{
		"Trainer": trainer,
		"Sexes":   validator.AllowedValues(validator.TagSex),
	}
	if formErr != nil {
		data["FormError"] = errorMessage(c, formErr)
	}
	p.render(c, status, "trainer_detail", s, data)
}

func (p *Pages) UpdateTrainer(c *gin.Context, s *Session) {
	trainer, err := p.ownedTrainer(c, s)
	if err != nil {
		p.render(c, errorStatus(err), "trainer_detail", s, gin.H{"Error": errorMessage(c, err)})
		return
	}

	patch, err := p.formPatch(c, dto.TrainerUpdateFields)
	if err == nil {
		_, err = p.services.TrainerService.Update(p.GetDB(c), trainer.ID, patch)
	}
	if err != nil {
		p.renderTrainerDetail(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/ui/trainers/%d", trainer.ID))
}

func (p *Pages) DeleteTrainer(c *gin.Context, s *Session) {
	trainer, err := p.ownedTrainer(c, s)
	if err == nil {
		err = p.services.TrainerService.Delete(p.GetDB(c), trainer.ID)
	}
	if err != nil {
		p.renderTrainers(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/trainers?page=1")
}
