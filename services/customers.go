package services

import (
	"context"
	"strings"

	"streamdesk-backend/models"
	"streamdesk-backend/utils"
)

type NewCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *Store) AddCustomer(ctx context.Context, in NewCustomer) (models.Customer, error) {
	c := models.Customer{Name: strings.TrimSpace(in.Name), Phone: strings.TrimSpace(in.Phone)}
	if err := validateCustomer(c); err != nil {
		record("add_customer", err)
		return models.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.newID()
	next := append(append(make([]models.Customer, 0, len(s.customers)+1), s.customers...), c)
	s.commitCustomers(ctx, next)
	record("add_customer", nil)
	return c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := -1
	for k, existing := range s.customers {
		if existing.ID == c.ID {
			i = k
			break
		}
	}
	if i < 0 {
		return models.Customer{}, ErrNotFound
	}
	if err := validateCustomer(c); err != nil {
		record("update_customer", err)
		return models.Customer{}, err
	}

	next := append([]models.Customer{}, s.customers...)
	next[i] = c
	s.commitCustomers(ctx, next)
	record("update_customer", nil)
	return c, nil
}

// DeleteCustomer removes the customer unless a profile in any account is assigned to it.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.HasCustomer(id) {
			record("delete_customer", ErrCustomerInUse)
			return ErrCustomerInUse
		}
	}
	next := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.customers) {
		return ErrNotFound
	}
	s.commitCustomers(ctx, next)
	record("delete_customer", nil)
	return nil
}

func (s *Store) customerExistsLocked(id string) bool {
	for _, c := range s.customers {
		if c.ID == id {
			return true
		}
	}
	return false
}

func validateCustomer(c models.Customer) error {
	verr := &ValidationError{}
	if utils.IsBlank(c.Name) {
		verr.missing("name")
	}
	if utils.IsBlank(c.Phone) {
		verr.missing("phone")
	}
	return verr.err()
}
