package services

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"streamdesk-backend/models"
	"streamdesk-backend/utils"
)

type ExpirationBand string

const (
	BandExpired ExpirationBand = "expired"
	BandWarning ExpirationBand = "warning"
	BandActive  ExpirationBand = "active"
)

const (
	warningDays = 7
	alertDays   = 3
)

// DaysRemaining counts whole days, rounded up, from asOf to midnight UTC of expiration.
func DaysRemaining(expiration models.Date, asOf time.Time) int {
	return utils.DaysUntil(asOf, expiration.Time)
}

func ClassifyExpiration(a models.Account, asOf time.Time) ExpirationBand {
	days := DaysRemaining(a.ExpirationDate, asOf)
	switch {
	case days <= 0:
		return BandExpired
	case days <= warningDays:
		return BandWarning
	default:
		return BandActive
	}
}

// IsExpiringSoon reports whether the account falls in the alerting window of one to three days.
func IsExpiringSoon(a models.Account, asOf time.Time) bool {
	days := DaysRemaining(a.ExpirationDate, asOf)
	return days >= 1 && days <= alertDays
}

func ExpiringAccounts(accounts []models.Account, asOf time.Time) []models.Account {
	out := []models.Account{}
	for _, a := range accounts {
		if IsExpiringSoon(a, asOf) {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Occupancy is the fraction of the account's profile slots in use.
func Occupancy(a models.Account) float64 {
	if a.MaxProfiles <= 0 {
		return 0
	}
	return float64(len(a.Profiles)) / float64(a.MaxProfiles)
}

type DashboardStats struct {
	TotalAccounts   int             `json:"totalAccounts"`
	SoldProfiles    int             `json:"soldProfiles"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PendingPayments int             `json:"pendingPayments"`
}

func ComputeDashboardStats(accounts []models.Account) DashboardStats {
	stats := DashboardStats{TotalAccounts: len(accounts), TotalRevenue: decimal.Zero}
	for _, a := range accounts {
		stats.SoldProfiles += len(a.Profiles)
		for _, p := range a.Profiles {
			switch p.PaymentStatus {
			case models.PaymentPaid:
				stats.TotalRevenue = stats.TotalRevenue.Add(p.Price)
			case models.PaymentPending:
				stats.PendingPayments++
			}
		}
	}
	return stats
}

// FilterAccounts keeps the accounts whose service name, email, or any linked customer's
// name or phone contains term, ignoring case. Unknown references match as empty strings.
func FilterAccounts(accounts []models.Account, services []models.Service, customers []models.Customer, term string) []models.Account {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []models.Account{}
	if term == "" {
		for _, a := range accounts {
			out = append(out, a.Clone())
		}
		return out
	}

	serviceNames := serviceNameIndex(services)
	customerByID := customerIndex(customers)
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), term) }

	for _, a := range accounts {
		match := contains(serviceNames[a.ServiceID]) || contains(a.Email)
		for _, p := range a.Profiles {
			if match {
				break
			}
			c := customerByID[p.CustomerID]
			match = contains(c.Name) || contains(c.Phone)
		}
		if match {
			out = append(out, a.Clone())
		}
	}
	return out
}

// SortByExpiration returns a copy ordered by expiration date, soonest first.
func SortByExpiration(accounts []models.Account) []models.Account {
	out := make([]models.Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpirationDate.Before(out[j].ExpirationDate.Time)
	})
	return out
}

// AccountView is an account decorated for display.
type AccountView struct {
	models.Account
	ServiceName   string         `json:"serviceName"`
	Band          ExpirationBand `json:"band"`
	DaysRemaining int            `json:"daysRemaining"`
	Occupancy     float64        `json:"occupancy"`
	ExpiringSoon  bool           `json:"expiringSoon"`
}

func BuildAccountViews(accounts []models.Account, services []models.Service, asOf time.Time) []AccountView {
	names := serviceNameIndex(services)
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, AccountView{
			Account:       a.Clone(),
			ServiceName:   names[a.ServiceID],
			Band:          ClassifyExpiration(a, asOf),
			DaysRemaining: DaysRemaining(a.ExpirationDate, asOf),
			Occupancy:     Occupancy(a),
			ExpiringSoon:  IsExpiringSoon(a, asOf),
		})
	}
	return views
}

func serviceNameIndex(services []models.Service) map[string]string {
	m := make(map[string]string, len(services))
	for _, s := range services {
		m[s.ID] = s.Name
	}
	return m
}

func customerIndex(customers []models.Customer) map[string]models.Customer {
	m := make(map[string]models.Customer, len(customers))
	for _, c := range customers {
		m[c.ID] = c
	}
	return m
}
