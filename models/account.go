package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are persisted as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPaid || s == PaymentPending
}

// UnmarshalJSON also understands the Spanish labels used by the browser console.
func (s *PaymentStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch raw {
	case "Paid", "Pagado":
		*s = PaymentPaid
	case "Pending", "Pendiente", "":
		*s = PaymentPending
	default:
		return fmt.Errorf("unknown payment status %q", raw)
	}
	return nil
}

type Profile struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CustomerID    string          `json:"customerId"`
	Price         decimal.Decimal `json:"price"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Notes         string          `json:"notes,omitempty"`
}

type Account struct {
	ID             string    `json:"id"`
	ServiceID      string    `json:"serviceId"`
	Email          string    `json:"email"`
	Password       string    `json:"password,omitempty"`
	ExpirationDate Date      `json:"expirationDate"`
	MaxProfiles    int       `json:"maxProfiles"`
	Profiles       []Profile `json:"profiles"`
}

// Clone returns a copy that shares no profile storage with a.
func (a Account) Clone() Account {
	out := a
	out.Profiles = make([]Profile, len(a.Profiles))
	copy(out.Profiles, a.Profiles)
	return out
}

func (a Account) ProfileIndex(id string) int {
	for i, p := range a.Profiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (a Account) HasCustomer(customerID string) bool {
	for _, p := range a.Profiles {
		if p.CustomerID == customerID {
			return true
		}
	}
	return false
}
