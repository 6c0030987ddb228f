package domain

import "time"

type NotificationType string

const (
	NotificationImportant   NotificationType = "important"
	NotificationInformative NotificationType = "informative"
	NotificationInvitation  NotificationType = "invitation"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationImportant, NotificationInformative, NotificationInvitation:
		return true
	default:
		return false
	}
}

// RelatedEntity points a notification at the record it is about.
type RelatedEntity struct {
	EntityID   int64  `json:"entityID"`
	EntityType string `json:"entityType"`
}

type Notification struct {
	ID               int64             `json:"id"`
	UserID           int64             `json:"userID"`
	Type             NotificationType  `json:"type"`
	Message          string            `json:"message"`
	InvitationStatus *InvitationStatus `json:"invitationStatus,omitempty"`
	Related          *RelatedEntity    `json:"related,omitempty"`
	Read             bool              `json:"read"`
	CreatedAt        time.Time         `json:"createdAt"`
}
