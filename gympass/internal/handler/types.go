package handler

import (
	"time"

	"gym-server/gympass/internal/service"
	"gym-server/shared/models"
	"gym-server/shared/utils"

	"github.com/google/uuid"
)

type offerRequest struct {
	Title     string   `json:"title" validate:"required,max=100"`
	Subheader string   `json:"subheader" validate:"max=200"`
	Amount    float64  `json:"amount" validate:"gte=0"`
	Currency  string   `json:"currency" validate:"required,len=3"`
	Period    string   `json:"period" validate:"max=40"`
	IsPremium bool     `json:"isPremium"`
	Synopsis  string   `json:"synopsis" validate:"max=2000"`
	Features  []string `json:"features" validate:"max=30,dive,max=100"`
	TimeUnit  string   `json:"timeUnit" validate:"required,oneof=DAY WEEK MONTH YEAR"`
	Duration  int      `json:"duration" validate:"required,min=1,max=120"`
	Entries   *int     `json:"entries" validate:"omitempty,min=1"`
}

func (r offerRequest) toInput() service.OfferInput {
	return service.OfferInput{
		Title:     r.Title,
		Subheader: r.Subheader,
		Amount:    r.Amount,
		Currency:  r.Currency,
		Period:    r.Period,
		IsPremium: r.IsPremium,
		Synopsis:  r.Synopsis,
		Features:  r.Features,
		TimeUnit:  models.TimeUnit(r.TimeUnit),
		Duration:  r.Duration,
		Entries:   r.Entries,
	}
}

type purchaseRequest struct {
	OfferID   string  `json:"offerId" validate:"required,uuid"`
	UserID    *string `json:"userId" validate:"omitempty,uuid"`
	StartDate *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
}

type suspendRequest struct {
	Until string `json:"until" validate:"required,datetime=2006-01-02"`
}

type gymPassResponse struct {
	ID             uuid.UUID  `json:"id"`
	OfferID        uuid.UUID  `json:"offerId"`
	OfferTitle     string     `json:"offerTitle"`
	UserID         uuid.UUID  `json:"userId"`
	PurchasedAt    time.Time  `json:"purchasedAt"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	EntriesLeft    *int       `json:"entriesLeft,omitempty"`
	SuspensionDate *string    `json:"suspensionDate,omitempty"`
	LastEntryAt    *time.Time `json:"lastEntryAt,omitempty"`
	Status         string     `json:"status,omitempty"`
}

func toGymPassResponse(p *models.PurchasedGymPass, status models.GymPassStatus) gymPassResponse {
	resp := gymPassResponse{
		ID:          p.ID,
		OfferID:     p.OfferID,
		OfferTitle:  p.OfferTitle,
		UserID:      p.UserID,
		PurchasedAt: p.PurchasedAt,
		StartDate:   p.StartDate.Format(utils.DateLayout),
		EndDate:     p.EndDate.Format(utils.DateLayout),
		EntriesLeft: p.EntriesLeft,
		LastEntryAt: p.LastEntryAt,
		Status:      string(status),
	}
	if p.SuspensionDate != nil {
		s := p.SuspensionDate.Format(utils.DateLayout)
		resp.SuspensionDate = &s
	}
	return resp
}

func toGymPassList(items []service.PassStatus) []gymPassResponse {
	out := make([]gymPassResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toGymPassResponse(it.Pass, it.Status))
	}
	return out
}
