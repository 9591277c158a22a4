package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streamdesk-backend/services"
)

// DashboardOverview represents the dashboard data
type DashboardOverview struct {
	services.DashboardStats
	ExpiringSoon int `json:"expiringSoon"`
	Expired      int `json:"expired"`
	Warning      int `json:"warning"`
	Active       int `json:"active"`
}

// GetDashboardOverview returns the sales totals and the accounts per expiration band
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	accounts := h.Store.Accounts()
	now := h.Now()

	overview := DashboardOverview{
		DashboardStats: services.ComputeDashboardStats(accounts),
		ExpiringSoon:   len(services.ExpiringAccounts(accounts, now)),
	}
	for _, a := range accounts {
		switch services.ClassifyExpiration(a, now) {
		case services.BandExpired:
			overview.Expired++
		case services.BandWarning:
			overview.Warning++
		case services.BandActive:
			overview.Active++
		}
	}

	c.JSON(http.StatusOK, overview)
}
