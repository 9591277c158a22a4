// controllers/service.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamdesk-backend/utils"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name string `json:"name" binding:"required"`
}

// GetServices lists the service catalogue
func (h *Handler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Services())
}

// CreateService adds a service; its id is derived from the name
func (h *Handler) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, added := h.Store.AddService(c.Request.Context(), input.Name)
	if !added {
		utils.RespondWithError(c, http.StatusConflict, "Service already exists or has an empty name")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// DeleteService removes a service that no account uses
func (h *Handler) DeleteService(c *gin.Context) {
	if err := h.Store.RemoveService(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
