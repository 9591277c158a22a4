package services

import (
	"context"
	"strings"

	"streamdesk-backend/models"
	"streamdesk-backend/utils"
)

// NewAccount carries the user-supplied fields of an account; id and profiles are assigned.
type NewAccount struct {
	ServiceID      string      `json:"serviceId"`
	Email          string      `json:"email"`
	Password       string      `json:"password,omitempty"`
	ExpirationDate models.Date `json:"expirationDate"`
	MaxProfiles    int         `json:"maxProfiles"`
}

func (s *Store) AddAccount(ctx context.Context, in NewAccount) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ServiceID = strings.TrimSpace(in.ServiceID)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validateAccountLocked(in.ServiceID, "", in.Email, in.ExpirationDate, in.MaxProfiles); err != nil {
		record("add_account", err)
		return models.Account{}, err
	}

	acct := models.Account{
		ID:             s.newID(),
		ServiceID:      in.ServiceID,
		Email:          in.Email,
		Password:       in.Password,
		ExpirationDate: in.ExpirationDate,
		MaxProfiles:    in.MaxProfiles,
		Profiles:       []models.Profile{},
	}
	next := append(cloneAccounts(s.accounts), acct)
	s.commitAccounts(ctx, next)
	record("add_account", nil)
	return acct.Clone(), nil
}

// UpdateAccount replaces the stored account that has acct.ID. The replacement must
// honour capacity and carry well-formed profiles. Service and customer references are
// only checked when they differ from the stored ones, so accounts left pointing at a
// deleted service or customer can still be edited.
func (s *Store) UpdateAccount(ctx context.Context, acct models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := accountIndex(s.accounts, acct.ID)
	if i < 0 {
		return models.Account{}, ErrNotFound
	}

	acct = acct.Clone()
	acct.ServiceID = strings.TrimSpace(acct.ServiceID)
	acct.Email = strings.TrimSpace(acct.Email)
	prev := s.accounts[i]
	if err := s.validateAccountLocked(acct.ServiceID, prev.ServiceID, acct.Email, acct.ExpirationDate, acct.MaxProfiles); err != nil {
		record("update_account", err)
		return models.Account{}, err
	}
	if len(acct.Profiles) > acct.MaxProfiles {
		record("update_account", ErrCapacityReached)
		return models.Account{}, ErrCapacityReached
	}
	seen := make(map[string]bool, len(acct.Profiles))
	for k, p := range acct.Profiles {
		if p.ID == "" || seen[p.ID] {
			verr := &ValidationError{Invalid: []string{"profiles.id"}}
			record("update_account", verr)
			return models.Account{}, verr
		}
		seen[p.ID] = true
		if p.PaymentStatus == "" {
			p.PaymentStatus = models.PaymentPending
			acct.Profiles[k].PaymentStatus = p.PaymentStatus
		}
		var knownCustomer string
		if j := prev.ProfileIndex(p.ID); j >= 0 {
			knownCustomer = prev.Profiles[j].CustomerID
		}
		if err := s.validateProfileLocked(p, knownCustomer); err != nil {
			record("update_account", err)
			return models.Account{}, err
		}
	}

	next := cloneAccounts(s.accounts)
	next[i] = acct
	s.commitAccounts(ctx, next)
	record("update_account", nil)
	return acct.Clone(), nil
}

// DeleteAccount removes the account and all of its profiles. Without confirmation it
// does nothing and reports false.
func (s *Store) DeleteAccount(ctx context.Context, id string, confirmed bool) (bool, error) {
	if !confirmed {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := accountIndex(s.accounts, id)
	if i < 0 {
		return false, ErrNotFound
	}
	next := cloneAccounts(s.accounts)
	next = append(next[:i], next[i+1:]...)
	s.commitAccounts(ctx, next)
	record("delete_account", nil)
	return true, nil
}

// validateAccountLocked checks the account fields. knownServiceID is the stored value
// being replaced; it is accepted even when the service no longer exists.
func (s *Store) validateAccountLocked(serviceID, knownServiceID, email string, expiration models.Date, maxProfiles int) error {
	verr := &ValidationError{}
	if serviceID == "" {
		verr.missing("serviceId")
	} else if serviceID != knownServiceID && !s.serviceExistsLocked(serviceID) {
		verr.invalid("serviceId")
	}
	if utils.IsBlank(email) {
		verr.missing("email")
	} else if !utils.ValidateEmail(email) {
		verr.invalid("email")
	}
	if expiration.IsZero() {
		verr.missing("expirationDate")
	}
	if maxProfiles == 0 {
		verr.missing("maxProfiles")
	} else if maxProfiles < 1 {
		verr.invalid("maxProfiles")
	}
	return verr.err()
}
