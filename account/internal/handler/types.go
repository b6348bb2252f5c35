package handler

import (
	"time"

	"gym-server/shared/models"

	"github.com/google/uuid"
)

type updateProfileRequest struct {
	Name    string  `json:"name" binding:"required,max=60"`
	Surname string  `json:"surname" binding:"required,max=60"`
	Phone   *string `json:"phone" binding:"omitempty,e164"`
}

type updateTrainerProfileRequest struct {
	Synopsis        string   `json:"synopsis" binding:"max=255"`
	Description     string   `json:"description" binding:"max=5000"`
	Specializations []string `json:"specializations" binding:"max=20,dive,max=60"`
}

type profileResponse struct {
	UserID  uuid.UUID `json:"userId"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Surname string    `json:"surname"`
	Phone   *string   `json:"phone,omitempty"`
}

func toProfileResponse(p *models.Profile) profileResponse {
	return profileResponse{
		UserID:  p.UserID,
		Email:   p.Email,
		Name:    p.Name,
		Surname: p.Surname,
		Phone:   p.Phone,
	}
}

type trainerResponse struct {
	UserID          uuid.UUID `json:"userId"`
	Name            string    `json:"name"`
	Surname         string    `json:"surname"`
	Synopsis        string    `json:"synopsis"`
	Description     string    `json:"description"`
	Specializations []string  `json:"specializations"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toTrainerResponse(t *models.TrainerProfile) trainerResponse {
	specs := t.Specializations
	if specs == nil {
		specs = []string{}
	}
	return trainerResponse{
		UserID:          t.UserID,
		Name:            t.Name,
		Surname:         t.Surname,
		Synopsis:        t.Synopsis,
		Description:     t.Description,
		Specializations: specs,
		UpdatedAt:       t.UpdatedAt,
	}
}
