package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"streamdesk-backend/models"
	"streamdesk-backend/utils"
)

// NewProfile carries the user-supplied fields of a profile; the id is assigned.
type NewProfile struct {
	Name          string               `json:"name"`
	CustomerID    string               `json:"customerId"`
	Price         decimal.Decimal      `json:"price"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	Notes         string               `json:"notes,omitempty"`
}

// AddProfile appends a profile to the account. It is rejected with ErrCapacityReached
// when the account already holds maxProfiles profiles.
func (s *Store) AddProfile(ctx context.Context, accountID string, in NewProfile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := accountIndex(s.accounts, accountID)
	if i < 0 {
		record("add_profile", ErrNotFound)
		return models.Profile{}, ErrNotFound
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = models.PaymentPending
	}
	p := models.Profile{
		Name:          strings.TrimSpace(in.Name),
		CustomerID:    strings.TrimSpace(in.CustomerID),
		Price:         in.Price,
		PaymentStatus: in.PaymentStatus,
		Notes:         in.Notes,
	}
	if err := s.validateProfileLocked(p, ""); err != nil {
		record("add_profile", err)
		return models.Profile{}, err
	}
	if len(s.accounts[i].Profiles) >= s.accounts[i].MaxProfiles {
		record("add_profile", ErrCapacityReached)
		return models.Profile{}, ErrCapacityReached
	}

	p.ID = s.newID()
	next := cloneAccounts(s.accounts)
	next[i].Profiles = append(next[i].Profiles, p)
	s.commitAccounts(ctx, next)
	record("add_profile", nil)
	return p, nil
}

// UpdateProfile replaces the profile with the same id inside the account, keeping its position.
func (s *Store) UpdateProfile(ctx context.Context, accountID string, p models.Profile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := accountIndex(s.accounts, accountID)
	if i < 0 {
		return models.Profile{}, ErrNotFound
	}
	j := s.accounts[i].ProfileIndex(p.ID)
	if j < 0 {
		return models.Profile{}, ErrNotFound
	}
	p.Name = strings.TrimSpace(p.Name)
	p.CustomerID = strings.TrimSpace(p.CustomerID)
	if p.PaymentStatus == "" {
		p.PaymentStatus = models.PaymentPending
	}
	if err := s.validateProfileLocked(p, s.accounts[i].Profiles[j].CustomerID); err != nil {
		record("update_profile", err)
		return models.Profile{}, err
	}

	next := cloneAccounts(s.accounts)
	next[i].Profiles[j] = p
	s.commitAccounts(ctx, next)
	record("update_profile", nil)
	return p, nil
}

func (s *Store) DeleteProfile(ctx context.Context, accountID, profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := accountIndex(s.accounts, accountID)
	if i < 0 {
		return ErrNotFound
	}
	j := s.accounts[i].ProfileIndex(profileID)
	if j < 0 {
		return ErrNotFound
	}
	next := cloneAccounts(s.accounts)
	next[i].Profiles = append(next[i].Profiles[:j], next[i].Profiles[j+1:]...)
	s.commitAccounts(ctx, next)
	record("delete_profile", nil)
	return nil
}

// validateProfileLocked checks p. knownCustomerID is the stored customer of the profile
// being replaced; keeping it is allowed even after that customer was deleted.
func (s *Store) validateProfileLocked(p models.Profile, knownCustomerID string) error {
	verr := &ValidationError{}
	if utils.IsBlank(p.Name) {
		verr.missing("name")
	}
	if utils.IsBlank(p.CustomerID) {
		verr.missing("customerId")
	} else if p.CustomerID != knownCustomerID && !s.customerExistsLocked(p.CustomerID) {
		verr.invalid("customerId")
	}
	if p.Price.IsNegative() {
		verr.invalid("price")
	}
	if !p.PaymentStatus.Valid() {
		verr.invalid("paymentStatus")
	}
	return verr.err()
}
