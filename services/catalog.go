package services

import (
	"context"
	"strings"

	"streamdesk-backend/models"
)

// AddService appends a service named name. It returns false, leaving the catalogue
// untouched, when the name is blank or already taken (case-insensitively, or by slug).
func (s *Store) AddService(ctx context.Context, name string) (models.Service, bool) {
	name = strings.TrimSpace(name)
	id := models.ServiceSlug(name)
	if id == "" {
		return models.Service{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.services {
		if strings.EqualFold(existing.Name, name) || existing.ID == id {
			record("add_service", ErrValidation)
			return models.Service{}, false
		}
	}

	svc := models.Service{ID: id, Name: name}
	next := append(append(make([]models.Service, 0, len(s.services)+1), s.services...), svc)
	s.commitServices(ctx, next)
	record("add_service", nil)
	return svc, true
}

// RemoveService deletes the service with id unless an account still uses it.
func (s *Store) RemoveService(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ServiceID == id {
			record("remove_service", ErrServiceInUse)
			return ErrServiceInUse
		}
	}

	next := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		if svc.ID != id {
			next = append(next, svc)
		}
	}
	if len(next) == len(s.services) {
		return ErrNotFound
	}
	s.commitServices(ctx, next)
	record("remove_service", nil)
	return nil
}

func (s *Store) serviceExistsLocked(id string) bool {
	for _, svc := range s.services {
		if svc.ID == id {
			return true
		}
	}
	return false
}
