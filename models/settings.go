package models

import "strings"

// NotificationSettings holds the Telegram bot credentials used for expiry alerts.
type NotificationSettings struct {
	BotToken string `json:"botToken"`
	ChatID   string `json:"chatId"`
}

func (s NotificationSettings) Configured() bool {
	return strings.TrimSpace(s.BotToken) != "" && strings.TrimSpace(s.ChatID) != ""
}
