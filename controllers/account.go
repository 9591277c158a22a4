package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"streamdesk-backend/models"
	"streamdesk-backend/services"
	"streamdesk-backend/utils"
)

// CreateAccountInput defines the expected JSON structure for creating an account
type CreateAccountInput struct {
	ServiceID      string      `json:"serviceId" binding:"required"`
	Email          string      `json:"email" binding:"required"`
	Password       string      `json:"password"`
	ExpirationDate models.Date `json:"expirationDate"`
	MaxProfiles    int         `json:"maxProfiles" binding:"required,min=1"`
}

// UpdateAccountInput defines the expected JSON structure for updating an account
type UpdateAccountInput struct {
	ServiceID      *string      `json:"serviceId"`
	Email          *string      `json:"email"`
	Password       *string      `json:"password"`
	ExpirationDate *models.Date `json:"expirationDate"`
	MaxProfiles    *int         `json:"maxProfiles"`
}

// GetAccounts lists accounts matching ?search=, soonest expiration first
func (h *Handler) GetAccounts(c *gin.Context) {
	snap := h.Store.Snapshot()
	filtered := services.FilterAccounts(snap.Accounts, snap.Services, snap.Customers, c.Query("search"))
	views := services.BuildAccountViews(services.SortByExpiration(filtered), snap.Services, h.Now())

	c.JSON(http.StatusOK, views)
}

// GetAccount retrieves a specific account by ID
func (h *Handler) GetAccount(c *gin.Context) {
	account, ok := h.Store.Account(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	views := services.BuildAccountViews([]models.Account{account}, h.Store.Services(), h.Now())
	c.JSON(http.StatusOK, views[0])
}

// CreateAccount creates an account with no profiles
func (h *Handler) CreateAccount(c *gin.Context) {
	var input CreateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	account, err := h.Store.AddAccount(c.Request.Context(), services.NewAccount{
		ServiceID:      input.ServiceID,
		Email:          input.Email,
		Password:       input.Password,
		ExpirationDate: input.ExpirationDate,
		MaxProfiles:    input.MaxProfiles,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// UpdateAccount applies the provided fields to an existing account
func (h *Handler) UpdateAccount(c *gin.Context) {
	account, ok := h.Store.Account(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}

	var input UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.ServiceID != nil {
		account.ServiceID = *input.ServiceID
	}
	if input.Email != nil {
		account.Email = *input.Email
	}
	if input.Password != nil {
		account.Password = *input.Password
	}
	if input.ExpirationDate != nil {
		account.ExpirationDate = *input.ExpirationDate
	}
	if input.MaxProfiles != nil {
		account.MaxProfiles = *input.MaxProfiles
	}

	updated, err := h.Store.UpdateAccount(c.Request.Context(), account)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAccount removes an account and its profiles. It only acts with ?confirm=true.
func (h *Handler) DeleteAccount(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	deleted, err := h.Store.DeleteAccount(c.Request.Context(), c.Param("id"), confirmed)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusOK, gin.H{"deleted": false, "message": "Deletion not confirmed, nothing was changed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "message": "Account deleted successfully"})
}
