package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the adjudication state of a credit application.
type Status string

const (
	StatusNew      Status = "new"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// autoRejectThreshold is the amount above which an application is
// pre-screened out without human review.
var autoRejectThreshold = decimal.NewFromInt(100000)

// InitialStatus applies the automatic pre-screen: amounts strictly above
// 100000 are rejected, everything else (the threshold included) starts new.
func InitialStatus(amount decimal.Decimal) Status {
	if amount.GreaterThan(autoRejectThreshold) {
		return StatusRejected
	}
	return StatusNew
}

// Application is a single credit request owned by the user who submitted it.
// Only Status changes after creation.
type Application struct {
	ID        int64           `json:"id"`
	FullName  string          `json:"full_name"`
	Amount    decimal.Decimal `json:"amount"`
	Phone     string          `json:"phone"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UserID    int64           `json:"user_id"`
}
