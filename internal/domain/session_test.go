package domain

import (
	"testing"
	"time"
)

func TestSessionExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"future expiry", now.Add(time.Hour), false},
		{"past expiry", now.Add(-time.Hour), true},
		{"zero expiry never expires", time.Time{}, false},
		{"exact expiry instant still valid", now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{ExpiresAt: tt.expiresAt}
			if got := s.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupRequestPending(t *testing.T) {
	pending := GroupRequest{}
	if !pending.Pending() {
		t.Error("request with nil Accepted should be pending")
	}

	accepted := true
	resolved := GroupRequest{Accepted: &accepted}
	if resolved.Pending() {
		t.Error("resolved request should not be pending")
	}
}

func TestRecordTypeValid(t *testing.T) {
	if !RecordTypeExpense.Valid() || !RecordTypeIncome.Valid() {
		t.Error("known types should be valid")
	}
	if RecordType("TRANSFER").Valid() || RecordType("").Valid() {
		t.Error("unknown types should be invalid")
	}
}
