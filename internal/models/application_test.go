package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		amount string
		want   Status
	}{
		{"0.01", StatusNew},
		{"50000", StatusNew},
		{"99999.99", StatusNew},
		{"100000", StatusNew},
		{"100000.00", StatusNew},
		{"100000.01", StatusRejected},
		{"150000.00", StatusRejected},
		{"999999999999", StatusRejected},
	}
	for _, tt := range tests {
		amount, err := decimal.NewFromString(tt.amount)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.amount, err)
		}
		if got := InitialStatus(amount); got != tt.want {
			t.Errorf("InitialStatus(%s) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []Status{"", "pending", "NEW", "Approved"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	if !(User{Username: "admin"}).IsAdmin() {
		t.Fatal("admin user not recognized")
	}
	for _, name := range []string{"Admin", "administrator", "alice", ""} {
		if (User{Username: name}).IsAdmin() {
			t.Errorf("%q wrongly recognized as admin", name)
		}
	}
}
