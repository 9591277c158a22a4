package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"streamdesk-backend/services"
	"streamdesk-backend/utils"
)

// Handler serves the console API on top of one Store.
type Handler struct {
	Store    *services.Store
	Watcher  *services.ExpiryWatcher
	Notifier *services.Notifier
	Now      func() time.Time
}

func NewHandler(store *services.Store, watcher *services.ExpiryWatcher, notifier *services.Notifier) *Handler {
	return &Handler{Store: store, Watcher: watcher, Notifier: notifier, Now: time.Now}
}

// respondStoreError maps a rejected store operation to an HTTP error response.
func respondStoreError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, services.ErrServiceInUse):
		utils.RespondWithError(c, http.StatusConflict, "Service is still used by at least one account")
	case errors.Is(err, services.ErrCustomerInUse):
		utils.RespondWithError(c, http.StatusConflict, "Customer is still assigned to at least one profile")
	case errors.Is(err, services.ErrCapacityReached):
		utils.RespondWithError(c, http.StatusConflict, "Account has reached its maximum number of profiles")
	case errors.Is(err, services.ErrNotificationNotConfigured):
		utils.RespondWithError(c, http.StatusPreconditionFailed, "Configure the bot token and chat id first")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}
