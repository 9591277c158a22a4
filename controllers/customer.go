package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamdesk-backend/services"
	"streamdesk-backend/utils"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// CreateCustomer creates a new customer
func (h *Handler) CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := h.Store.AddCustomer(c.Request.Context(), services.NewCustomer{
		Name:  input.Name,
		Phone: input.Phone,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers
func (h *Handler) GetCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Customers())
}

// GetCustomer retrieves a specific customer by ID
func (h *Handler) GetCustomer(c *gin.Context) {
	customer, ok := h.Store.Customer(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func (h *Handler) UpdateCustomer(c *gin.Context) {
	customer, ok := h.Store.Customer(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}

	updated, err := h.Store.UpdateCustomer(c.Request.Context(), customer)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteCustomer removes a customer that holds no profile
func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.Store.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
