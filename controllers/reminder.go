package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"streamdesk-backend/models"
	"streamdesk-backend/services"
	"streamdesk-backend/utils"
)

// UpdateNotificationSettingsInput defines the expected JSON structure for the Telegram settings
type UpdateNotificationSettingsInput struct {
	BotToken *string `json:"botToken"`
	ChatID   *string `json:"chatId"`
}

// GetNotificationSettings returns the settings with the bot token masked
func (h *Handler) GetNotificationSettings(c *gin.Context) {
	settings := h.Store.Settings()
	c.JSON(http.StatusOK, gin.H{
		"botToken":   maskToken(settings.BotToken),
		"chatId":     settings.ChatID,
		"configured": settings.Configured(),
	})
}

// UpdateNotificationSettings replaces the provided fields of the settings
func (h *Handler) UpdateNotificationSettings(c *gin.Context) {
	var input UpdateNotificationSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings := h.Store.Settings()
	if input.BotToken != nil {
		settings.BotToken = strings.TrimSpace(*input.BotToken)
	}
	if input.ChatID != nil {
		settings.ChatID = strings.TrimSpace(*input.ChatID)
	}
	settings = h.Store.UpdateSettings(c.Request.Context(), settings)

	c.JSON(http.StatusOK, gin.H{
		"botToken":   maskToken(settings.BotToken),
		"chatId":     settings.ChatID,
		"configured": settings.Configured(),
	})
}

// GetExpiringAccounts returns the accounts in the alert window from the last evaluation
func (h *Handler) GetExpiringAccounts(c *gin.Context) {
	expiring := h.Watcher.Expiring()
	c.JSON(http.StatusOK, gin.H{
		"evaluatedAt": h.Watcher.EvaluatedAt(),
		"accounts":    services.BuildAccountViews(expiring, h.Store.Services(), h.Now()),
	})
}

// SendTestNotification formats the expiry alert for one account and simulates sending it
func (h *Handler) SendTestNotification(c *gin.Context) {
	account, ok := h.Store.Account(c.Param("accountId"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	entry, err := h.Notifier.NotifyAccount(c.Request.Context(), services.NotificationTest, h.Store.Settings(), account, h.Store.Services())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetNotificationLog lists the recent notification attempts
func (h *Handler) GetNotificationLog(c *gin.Context) {
	entries := h.Notifier.Log().Entries()
	if entries == nil {
		entries = []models.NotificationEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
