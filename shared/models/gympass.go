package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeUnit - единица длительности абонемента.
type TimeUnit string

const (
	TimeUnitDay   TimeUnit = "DAY"
	TimeUnitWeek  TimeUnit = "WEEK"
	TimeUnitMonth TimeUnit = "MONTH"
	TimeUnitYear  TimeUnit = "YEAR"
)

// GymPassOffer - предложение абонемента. Entries == nil означает абонемент по времени.
type GymPassOffer struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Subheader string     `db:"subheader" json:"subheader"`
	Amount    float64    `db:"amount" json:"amount"`
	Currency  string     `db:"currency" json:"currency"`
	Period    string     `db:"period" json:"period"`
	IsPremium bool       `db:"is_premium" json:"isPremium"`
	Synopsis  string     `db:"synopsis" json:"synopsis"`
	Features  []string   `db:"features" json:"features"`
	TimeUnit  TimeUnit   `db:"time_unit" json:"timeUnit"`
	Duration  int        `db:"duration" json:"duration"`
	Entries   *int       `db:"entries" json:"entries,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	// DeletedAt - снятие с продажи. Купленные абонементы продолжают ссылаться на предложение.
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// IsDeleted сообщает, снято ли предложение с продажи.
func (o *GymPassOffer) IsDeleted() bool {
	return o.DeletedAt != nil
}

// PurchasedGymPass - купленный абонемент. Даты хранятся как даты (UTC, без времени).
type PurchasedGymPass struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	OfferID        uuid.UUID  `db:"offer_id" json:"offerId"`
	OfferTitle     string     `db:"offer_title" json:"offerTitle"`
	UserID         uuid.UUID  `db:"user_id" json:"userId"`
	PurchasedAt    time.Time  `db:"purchased_at" json:"purchasedAt"`
	StartDate      time.Time  `db:"start_date" json:"startDate"`
	EndDate        time.Time  `db:"end_date" json:"endDate"`
	EntriesLeft    *int       `db:"entries_left" json:"entriesLeft,omitempty"`
	SuspensionDate *time.Time `db:"suspension_date" json:"suspensionDate,omitempty"`
	LastEntryAt    *time.Time `db:"last_entry_at" json:"lastEntryAt,omitempty"`
}

// GymPassStatus - результат проверки абонемента на входе.
type GymPassStatus string

const (
	GymPassValid      GymPassStatus = "VALID"
	GymPassNotStarted GymPassStatus = "NOT_STARTED"
	GymPassExpired    GymPassStatus = "EXPIRED"
	GymPassSuspended  GymPassStatus = "SUSPENDED"
	GymPassNoEntries  GymPassStatus = "NO_ENTRIES"
)
