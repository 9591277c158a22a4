package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"streamdesk-backend/config"
	"streamdesk-backend/metrics"
	"streamdesk-backend/models"
)

// ExpiryWatcher caches the set of accounts about to expire. The set is recomputed on
// the configured schedule and whenever the store commits an accounts change.
type ExpiryWatcher struct {
	store    *Store
	notifier *Notifier
	schedule string
	notify   bool
	now      func() time.Time

	mu          sync.RWMutex
	expiring    []models.Account
	evaluatedAt time.Time

	runMu   sync.Mutex
	cron    *cron.Cron
	running bool
}

func NewExpiryWatcher(store *Store, notifier *Notifier, cfg config.ReminderConfig) *ExpiryWatcher {
	w := &ExpiryWatcher{
		store:    store,
		notifier: notifier,
		schedule: cfg.Schedule,
		notify:   cfg.Notify,
		now:      time.Now,
		expiring: []models.Account{},
	}
	store.OnAccountsChanged(func(accounts []models.Account) { w.evaluate(accounts) })
	return w
}

// Start evaluates once and then schedules the periodic run. Calling Start on a running
// watcher does nothing.
func (w *ExpiryWatcher) Start(ctx context.Context) error {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if w.running {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(w.schedule, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", w.schedule, err)
	}

	w.RunOnce(ctx)

	c.Start()
	w.cron = c
	w.running = true
	log.Info().Str("schedule", w.schedule).Bool("notify", w.notify).Msg("Expiry watcher started")
	return nil
}

// Stop cancels the schedule and waits for a run in progress to finish.
func (w *ExpiryWatcher) Stop() {
	w.runMu.Lock()
	defer w.runMu.Unlock()
	if !w.running {
		return
	}
	<-w.cron.Stop().Done()
	w.cron = nil
	w.running = false
	log.Info().Msg("Expiry watcher stopped")
}

// RunOnce re-evaluates the expiring set from the current accounts and, when enabled,
// sends an alert for each of them.
func (w *ExpiryWatcher) RunOnce(ctx context.Context) []models.Account {
	var expiring []models.Account
	w.store.WithAccounts(func(accounts []models.Account) {
		expiring = w.evaluate(accounts)
	})
	log.Info().Int("expiring", len(expiring)).Msg("Expiring accounts evaluated")

	if w.notify && w.notifier != nil {
		w.sendAlerts(ctx, expiring)
	}
	return expiring
}

// Expiring returns the cached result of the last evaluation.
func (w *ExpiryWatcher) Expiring() []models.Account {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return cloneAccounts(w.expiring)
}

func (w *ExpiryWatcher) EvaluatedAt() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.evaluatedAt
}

// evaluate is also registered as a store listener, so it must not call back into the store.
// Callers hold the store lock, which keeps the cached set in commit order.
func (w *ExpiryWatcher) evaluate(accounts []models.Account) []models.Account {
	now := w.now()
	expiring := ExpiringAccounts(accounts, now)

	w.mu.Lock()
	w.expiring = expiring
	w.evaluatedAt = now
	w.mu.Unlock()

	metrics.ExpiringAccounts.Set(float64(len(expiring)))
	metrics.ExpiryEvaluationsTotal.Inc()
	return cloneAccounts(expiring)
}

func (w *ExpiryWatcher) sendAlerts(ctx context.Context, expiring []models.Account) {
	if len(expiring) == 0 {
		return
	}
	settings := w.store.Settings()
	if !settings.Configured() {
		log.Warn().Int("expiring", len(expiring)).Msg("Skipping expiry alerts: notification settings are incomplete")
		return
	}
	services := w.store.Services()
	for _, acct := range expiring {
		if ctx.Err() != nil {
			return
		}
		// failures are recorded in the notification log
		_, _ = w.notifier.NotifyAccount(ctx, NotificationExpiry, settings, acct, services)
	}
}
