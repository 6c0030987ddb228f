package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/workhive/backend/internal/domain"
)

func TestInvitationRespond(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		accept bool
		want   domain.InvitationStatus
	}{
		{"accept", true, domain.InvitationAccepted},
		{"reject", false, domain.InvitationRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &domain.EmployeeInvitation{
				ProfessionalID: 1,
				CompanyID:      2,
				Position:       "Electrician",
				Status:         domain.InvitationPending,
			}

			if err := inv.Respond(tt.accept, now); err != nil {
				t.Fatalf("Respond: %v", err)
			}
			if inv.Status != tt.want {
				t.Errorf("status = %q, want %q", inv.Status, tt.want)
			}
			if inv.RespondedAt == nil || !inv.RespondedAt.Equal(now) {
				t.Errorf("respondedAt = %v, want %v", inv.RespondedAt, now)
			}
		})
	}
}

func TestInvitationRespond_OnlyOnce(t *testing.T) {
	inv := &domain.EmployeeInvitation{Status: domain.InvitationPending}
	if err := inv.Respond(true, time.Now()); err != nil {
		t.Fatalf("first respond: %v", err)
	}

	if err := inv.Respond(false, time.Now()); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second respond err = %v, want ErrConflict", err)
	}
	if inv.Status != domain.InvitationAccepted {
		t.Errorf("status = %q, want accepted to stick", inv.Status)
	}
}
