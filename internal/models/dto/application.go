package dto

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/creditdesk/credit-intake-be/internal/models"
)

type CreateApplicationRequest struct {
	FullName string          `json:"full_name"`
	Amount   decimal.Decimal `json:"amount"`
	Phone    string          `json:"phone"`
}

// Validate checks the request shape and returns the normalized full name and
// phone. The amount stays a decimal end to end; binary floats would make the
// pre-screen threshold comparison inexact.
func (r CreateApplicationRequest) Validate() (fullName, phone string, err error) {
	// Length bounds count characters, not bytes; names are routinely
	// Cyrillic, where every character is two bytes of UTF-8.
	fullName = strings.TrimSpace(r.FullName)
	switch n := utf8.RuneCountInString(fullName); {
	case n < 2:
		return "", "", errors.New("full_name must be at least 2 characters")
	case n > 100:
		return "", "", errors.New("full_name must be at most 100 characters")
	}
	if !r.Amount.IsPositive() {
		return "", "", errors.New("amount must be greater than 0")
	}
	phone, err = NormalizePhone(r.Phone)
	if err != nil {
		return "", "", err
	}
	return fullName, phone, nil
}

// NormalizePhone strips everything but digits and prefixes a plus sign.
// Normalizing an already-normalized number yields the same value.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	switch n := digits.Len(); {
	case n < 10:
		return "", errors.New("phone must contain at least 10 digits")
	case n > 15:
		return "", errors.New("phone must contain at most 15 digits")
	}
	return "+" + digits.String(), nil
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status"`
}
