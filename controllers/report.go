// controllers/report.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamdesk-backend/services"
)

// GetReportAnalytics returns revenue per service and the top customers
func (h *Handler) GetReportAnalytics(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, services.BuildServiceReport(snap.Accounts, snap.Services, snap.Customers))
}
