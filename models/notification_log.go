package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"

	ChannelTelegram = "telegram"
)

// NotificationEntry records one attempt to alert about an expiring account.
type NotificationEntry struct {
	ID           uuid.UUID `json:"id"`
	AccountID    string    `json:"accountId"`
	Type         string    `json:"type"` // expiry, test
	Message      string    `json:"message"`
	Status       string    `json:"status"` // sent, failed, skipped
	ErrorMessage string    `json:"errorMessage,omitempty"`
	Channel      string    `json:"channel"`
	SentAt       time.Time `json:"sentAt"`
}

func NewNotificationEntry(accountID, kind string, at time.Time) NotificationEntry {
	return NotificationEntry{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      kind,
		Channel:   ChannelTelegram,
		SentAt:    at,
	}
}
