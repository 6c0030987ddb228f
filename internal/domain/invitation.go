package domain

import (
	"fmt"
	"time"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationRejected:
		return true
	default:
		return false
	}
}

// EmployeeInvitation is a company's employment offer to a professional. It is
// written exactly once after creation: pending to accepted or rejected. At
// most one pending invitation may exist per (professional, company) pair,
// backed by a partial unique index.
type EmployeeInvitation struct {
	ID             int64            `json:"id"`
	ProfessionalID int64            `json:"professionalID"`
	CompanyID      int64            `json:"companyID"`
	Position       string           `json:"position"`
	Status         InvitationStatus `json:"status"`
	InvitedAt      time.Time        `json:"invitedAt"`
	RespondedAt    *time.Time       `json:"respondedAt"`
	NotificationID *int64           `json:"notificationID"`
}

// Respond performs the single pending-to-answered transition.
func (inv *EmployeeInvitation) Respond(accept bool, now time.Time) error {
	if inv.Status != InvitationPending {
		return fmt.Errorf("invitation already %s: %w", inv.Status, ErrConflict)
	}

	if accept {
		inv.Status = InvitationAccepted
	} else {
		inv.Status = InvitationRejected
	}
	responded := now
	inv.RespondedAt = &responded
	return nil
}
