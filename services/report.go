package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"streamdesk-backend/models"
)

const (
	unknownLabel      = "unknown"
	topCustomersLimit = 4
)

// ServiceReport summarises sales per service and the best paying customers.
type ServiceReport struct {
	Services     []ServiceSummary  `json:"services"`
	TopCustomers []CustomerSummary `json:"topCustomers"`
	QuickStats   QuickStatistics   `json:"quickStats"`
}

type ServiceSummary struct {
	ServiceID       string          `json:"serviceId"`
	Name            string          `json:"name"`
	Accounts        int             `json:"accounts"`
	SoldProfiles    int             `json:"soldProfiles"`
	Capacity        int             `json:"capacity"`
	Revenue         decimal.Decimal `json:"revenue"`
	PendingPayments int             `json:"pendingPayments"`
}

type CustomerSummary struct {
	CustomerID string          `json:"customerId"`
	Name       string          `json:"name"`
	Profiles   int             `json:"profiles"`
	Spent      decimal.Decimal `json:"spent"`
}

type QuickStatistics struct {
	TotalCustomers  int             `json:"totalCustomers"`
	TotalAccounts   int             `json:"totalAccounts"`
	AvgOccupancy    float64         `json:"avgOccupancy"`
	AvgProfilePrice decimal.Decimal `json:"avgProfilePrice"`
}

// BuildServiceReport groups accounts by service. Accounts or profiles that point at a
// service or customer that no longer exists are reported under "unknown".
func BuildServiceReport(accounts []models.Account, services []models.Service, customers []models.Customer) ServiceReport {
	names := serviceNameIndex(services)
	customerByID := customerIndex(customers)

	byService := map[string]*ServiceSummary{}
	var order []string
	byCustomer := map[string]*CustomerSummary{}

	var (
		totalPrice    = decimal.Zero
		totalProfiles int
		occupancySum  float64
	)

	for _, a := range accounts {
		id := a.ServiceID
		name, ok := names[id]
		if !ok {
			id, name = unknownLabel, unknownLabel
		}
		sum := byService[id]
		if sum == nil {
			sum = &ServiceSummary{ServiceID: id, Name: name, Revenue: decimal.Zero}
			byService[id] = sum
			order = append(order, id)
		}
		sum.Accounts++
		sum.SoldProfiles += len(a.Profiles)
		sum.Capacity += a.MaxProfiles
		occupancySum += Occupancy(a)

		for _, p := range a.Profiles {
			totalProfiles++
			totalPrice = totalPrice.Add(p.Price)
			if p.PaymentStatus == models.PaymentPending {
				sum.PendingPayments++
			}

			cid := p.CustomerID
			c, ok := customerByID[cid]
			if !ok {
				cid, c.Name = unknownLabel, unknownLabel
			}
			cs := byCustomer[cid]
			if cs == nil {
				cs = &CustomerSummary{CustomerID: cid, Name: c.Name, Spent: decimal.Zero}
				byCustomer[cid] = cs
			}
			cs.Profiles++
			if p.PaymentStatus == models.PaymentPaid {
				sum.Revenue = sum.Revenue.Add(p.Price)
				cs.Spent = cs.Spent.Add(p.Price)
			}
		}
	}

	report := ServiceReport{
		Services:     make([]ServiceSummary, 0, len(order)),
		TopCustomers: []CustomerSummary{},
		QuickStats: QuickStatistics{
			TotalCustomers:  len(customers),
			TotalAccounts:   len(accounts),
			AvgProfilePrice: decimal.Zero,
		},
	}
	for _, id := range order {
		report.Services = append(report.Services, *byService[id])
	}
	sort.SliceStable(report.Services, func(i, j int) bool {
		return report.Services[i].Revenue.GreaterThan(report.Services[j].Revenue)
	})

	for _, cs := range byCustomer {
		report.TopCustomers = append(report.TopCustomers, *cs)
	}
	sort.Slice(report.TopCustomers, func(i, j int) bool {
		a, b := report.TopCustomers[i], report.TopCustomers[j]
		if !a.Spent.Equal(b.Spent) {
			return a.Spent.GreaterThan(b.Spent)
		}
		return a.Name < b.Name
	})
	if len(report.TopCustomers) > topCustomersLimit {
		report.TopCustomers = report.TopCustomers[:topCustomersLimit]
	}

	if len(accounts) > 0 {
		report.QuickStats.AvgOccupancy = occupancySum / float64(len(accounts))
	}
	if totalProfiles > 0 {
		report.QuickStats.AvgProfilePrice = totalPrice.Div(decimal.NewFromInt(int64(totalProfiles))).Round(2)
	}
	return report
}
