package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamdesk-backend/models"
	"streamdesk-backend/services"
	"streamdesk-backend/storage"
)

// seedDataDir writes one account with two profiles into a file store under a temp dir.
func seedDataDir(t *testing.T) (string, models.Account) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	s := services.OpenStore(ctx, kv)
	c, err := s.AddCustomer(ctx, services.NewCustomer{Name: "Ana", Phone: "1"})
	require.NoError(t, err)
	a, err := s.AddAccount(ctx, services.NewAccount{
		ServiceID:      "spotify",
		Email:          "family@example.com",
		ExpirationDate: models.DateOf(time.Now().UTC().AddDate(0, 0, 2)),
		MaxProfiles:    3,
	})
	require.NoError(t, err)
	for _, p := range []services.NewProfile{
		{Name: "A", CustomerID: c.ID, Price: decimal.NewFromInt(10), PaymentStatus: models.PaymentPaid},
		{Name: "B", CustomerID: c.ID, Price: decimal.NewFromInt(5), PaymentStatus: models.PaymentPending},
	} {
		_, err := s.AddProfile(ctx, a.ID, p)
		require.NoError(t, err)
	}
	s.UpdateSettings(ctx, models.NotificationSettings{BotToken: "123:abc", ChatID: "42"})
	return dir, a
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STREAMDESK_STORAGE_DRIVER", "file")
	t.Setenv("STREAMDESK_STORAGE_DATA_DIR", dir)
	t.Setenv("STREAMDESK_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestStatsCommand(t *testing.T) {
	dir, _ := seedDataDir(t)

	out, err := run(t, dir, "stats", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalAccounts":1,"soldProfiles":2,"totalRevenue":10,"pendingPayments":1}`, out)

	out, err = run(t, dir, "stats", "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Revenue (paid):")
	assert.Contains(t, out, "10.00")
}

func TestExpiringCommand(t *testing.T) {
	dir, acct := seedDataDir(t)

	out, err := run(t, dir, "expiring", "--output", "json")
	require.NoError(t, err)
	var views []services.AccountView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 1)
	assert.Equal(t, acct.ID, views[0].ID)
	assert.Equal(t, "Spotify", views[0].ServiceName)

	out, err = run(t, dir, "expiring", "--output", "text", "--as-of", "2000-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "No accounts expiring soon.")
}

func TestNotifyCommand(t *testing.T) {
	dir, acct := seedDataDir(t)

	out, err := run(t, dir, "notify", acct.ID, "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Notification sent")
	assert.Contains(t, out, "family@example.com")

	_, err = run(t, dir, "notify", "missing", "--output", "text")
	assert.Error(t, err)
}
