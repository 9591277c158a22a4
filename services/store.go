package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"streamdesk-backend/metrics"
	"streamdesk-backend/models"
	"streamdesk-backend/storage"
)

// Storage keys of the four persisted collections.
const (
	KeyServices  = "services"
	KeyAccounts  = "accounts"
	KeyCustomers = "customers"
	KeySettings  = "telegramSettings"
)

// Store owns the console state. Its methods are the only way to change it; every
// committed change is written back to the key-value store before the method returns.
type Store struct {
	mu        sync.RWMutex
	services  []models.Service
	accounts  []models.Account
	customers []models.Customer
	settings  models.NotificationSettings

	serviceRepo  *storage.Repository[[]models.Service]
	accountRepo  *storage.Repository[[]models.Account]
	customerRepo *storage.Repository[[]models.Customer]
	settingsRepo *storage.Repository[models.NotificationSettings]

	newID     func() string
	listeners []func([]models.Account)
}

// Snapshot is a deep copy of the whole state.
type Snapshot struct {
	Services  []models.Service            `json:"services"`
	Accounts  []models.Account            `json:"accounts"`
	Customers []models.Customer           `json:"customers"`
	Settings  models.NotificationSettings `json:"telegramSettings"`
}

func NewStore(kv storage.KVStore) *Store {
	return &Store{
		services:  models.DefaultServices(),
		accounts:  []models.Account{},
		customers: []models.Customer{},

		serviceRepo:  storage.NewRepository(kv, KeyServices, models.DefaultServices),
		accountRepo:  storage.NewRepository(kv, KeyAccounts, func() []models.Account { return []models.Account{} }),
		customerRepo: storage.NewRepository(kv, KeyCustomers, func() []models.Customer { return []models.Customer{} }),
		settingsRepo: storage.NewRepository(kv, KeySettings, func() models.NotificationSettings { return models.NotificationSettings{} }),

		newID: uuid.NewString,
	}
}

// OpenStore creates a store over kv and loads the persisted collections.
func OpenStore(ctx context.Context, kv storage.KVStore) *Store {
	s := NewStore(kv)
	s.Load(ctx)
	return s
}

// Load replaces the in-memory state with what is persisted. Unreadable collections
// fall back to their defaults.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = nonNil(s.serviceRepo.Load(ctx))
	s.accounts = normalizeAccounts(s.accountRepo.Load(ctx))
	s.customers = nonNil(s.customerRepo.Load(ctx))
	s.settings = s.settingsRepo.Load(ctx)
	log.Info().
		Int("services", len(s.services)).
		Int("accounts", len(s.accounts)).
		Int("customers", len(s.customers)).
		Msg("state loaded")
	s.notifyLocked()
}

// OnAccountsChanged registers fn to be called with a copy of the accounts after every
// load or committed account change. fn must not call back into the store.
func (s *Store) OnAccountsChanged(fn func([]models.Account)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) Services() []models.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Service{}, s.services...)
}

func (s *Store) Accounts() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAccounts(s.accounts)
}

// WithAccounts calls fn with a copy of the accounts while holding the read lock, so fn
// is ordered with respect to commits and their listeners. fn must not call back into the store.
func (s *Store) WithAccounts(fn func([]models.Account)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(cloneAccounts(s.accounts))
}

func (s *Store) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Customer{}, s.customers...)
}

func (s *Store) Settings() models.NotificationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) Account(id string) (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := accountIndex(s.accounts, id); i >= 0 {
		return s.accounts[i].Clone(), true
	}
	return models.Account{}, false
}

func (s *Store) Customer(id string) (models.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Services:  append([]models.Service{}, s.services...),
		Accounts:  cloneAccounts(s.accounts),
		Customers: append([]models.Customer{}, s.customers...),
		Settings:  s.settings,
	}
}

// UpdateSettings replaces the notification settings.
func (s *Store) UpdateSettings(ctx context.Context, settings models.NotificationSettings) models.NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	persist(ctx, s.settingsRepo, settings)
	record("update_settings", nil)
	return settings
}

// commit helpers; callers hold s.mu for writing

func (s *Store) commitServices(ctx context.Context, next []models.Service) {
	s.services = next
	persist(ctx, s.serviceRepo, next)
}

func (s *Store) commitAccounts(ctx context.Context, next []models.Account) {
	s.accounts = next
	persist(ctx, s.accountRepo, next)
	s.notifyLocked()
}

func (s *Store) commitCustomers(ctx context.Context, next []models.Customer) {
	s.customers = next
	persist(ctx, s.customerRepo, next)
}

func (s *Store) notifyLocked() {
	for _, fn := range s.listeners {
		fn(cloneAccounts(s.accounts))
	}
}

// persist is best effort: the in-memory state stays authoritative when the write fails.
func persist[T any](ctx context.Context, repo *storage.Repository[T], v T) {
	if err := repo.Save(ctx, v); err != nil {
		metrics.PersistenceFailuresTotal.WithLabelValues(repo.Key()).Inc()
		log.Error().Err(err).Str("key", repo.Key()).Msg("failed to persist state")
	}
}

func record(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "rejected"
		log.Debug().Err(err).Str("operation", operation).Msg("mutation rejected")
	}
	metrics.MutationsTotal.WithLabelValues(operation, status).Inc()
}

func cloneAccounts(in []models.Account) []models.Account {
	out := make([]models.Account, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

func normalizeAccounts(in []models.Account) []models.Account {
	out := make([]models.Account, 0, len(in))
	for _, a := range in {
		if a.Profiles == nil {
			a.Profiles = []models.Profile{}
		}
		for j := range a.Profiles {
			if a.Profiles[j].PaymentStatus == "" {
				a.Profiles[j].PaymentStatus = models.PaymentPending
			}
		}
		out = append(out, a)
	}
	return out
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func accountIndex(accounts []models.Account, id string) int {
	for i, a := range accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}
