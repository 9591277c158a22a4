package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"streamdesk-backend/models"
	"streamdesk-backend/services"
	"streamdesk-backend/utils"
)

// CreateProfileInput defines the expected JSON structure for adding a profile to an account
type CreateProfileInput struct {
	Name          string               `json:"name" binding:"required"`
	CustomerID    string               `json:"customerId" binding:"required"`
	Price         decimal.Decimal      `json:"price"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	Notes         string               `json:"notes"`
}

// UpdateProfileInput defines the expected JSON structure for updating a profile
type UpdateProfileInput struct {
	Name          *string               `json:"name"`
	CustomerID    *string               `json:"customerId"`
	Price         *decimal.Decimal      `json:"price"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus"`
	Notes         *string               `json:"notes"`
}

// AddProfile assigns a new profile of the account to a customer
func (h *Handler) AddProfile(c *gin.Context) {
	var input CreateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	profile, err := h.Store.AddProfile(c.Request.Context(), c.Param("id"), services.NewProfile{
		Name:          input.Name,
		CustomerID:    input.CustomerID,
		Price:         input.Price,
		PaymentStatus: input.PaymentStatus,
		Notes:         input.Notes,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// UpdateProfile applies the provided fields to a profile of the account
func (h *Handler) UpdateProfile(c *gin.Context) {
	account, ok := h.Store.Account(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
	}
	i := account.ProfileIndex(c.Param("profileId"))
	if i < 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
		return
	}
	profile := account.Profiles[i]

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.CustomerID != nil {
		profile.CustomerID = *input.CustomerID
	}
	if input.Price != nil {
		profile.Price = *input.Price
	}
	if input.PaymentStatus != nil {
		profile.PaymentStatus = *input.PaymentStatus
	}
	if input.Notes != nil {
		profile.Notes = *input.Notes
	}

	updated, err := h.Store.UpdateProfile(c.Request.Context(), account.ID, profile)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProfile frees a profile slot of the account
func (h *Handler) DeleteProfile(c *gin.Context) {
	if err := h.Store.DeleteProfile(c.Request.Context(), c.Param("id"), c.Param("profileId")); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}
