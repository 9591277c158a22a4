package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamdesk-backend/config"
	"streamdesk-backend/controllers"
	"streamdesk-backend/models"
	"streamdesk-backend/services"
	"streamdesk-backend/storage"
)

type testServer struct {
	router *gin.Engine
	store  *services.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := services.OpenStore(context.Background(), storage.NewMemoryStore())
	notifier := services.NewNotifier(services.LogSender{}, nil)
	watcher := services.NewExpiryWatcher(store, notifier, config.ReminderConfig{Schedule: "@every 24h"})

	h := controllers.NewHandler(store, watcher, notifier)
	h.Now = func() time.Time { return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) }

	r := SetupRouter(config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}}, h)
	return &testServer{router: r, store: store}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) createCustomer(t *testing.T, name string) models.Customer {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/customers", gin.H{"name": name, "phone": "+51 999 000 111"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Customer](t, w)
}

func (s *testServer) createAccount(t *testing.T, expiration string, maxProfiles int) models.Account {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/accounts", gin.H{
		"serviceId":      "netflix",
		"email":          "owner@example.com",
		"password":       "secret",
		"expirationDate": expiration,
		"maxProfiles":    maxProfiles,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Account](t, w)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	s.createCustomer(t, "Ana")

	w := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "streamdesk_mutations_total")
	assert.Contains(t, w.Body.String(), "streamdesk_http_request_duration_seconds")
}

func TestServiceRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Service](t, w), 11)

	w = s.do(t, http.MethodPost, "/api/services", gin.H{"name": "Pluto TV"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "plutotv", decode[models.Service](t, w).ID)

	w = s.do(t, http.MethodPost, "/api/services", gin.H{"name": "pluto tv"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/services", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.createAccount(t, "2024-02-01", 2)
	w = s.do(t, http.MethodDelete, "/api/services/netflix", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodDelete, "/api/services/plutotv", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, "/api/services/plutotv", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccountRoutes(t *testing.T) {
	s := newTestServer(t)
	acct := s.createAccount(t, "2024-01-12", 2)
	assert.Equal(t, models.NewDate(2024, 1, 12), acct.ExpirationDate)

	w := s.do(t, http.MethodPost, "/api/accounts", gin.H{"serviceId": "hbo", "email": "x@example.com", "expirationDate": "2024-02-01", "maxProfiles": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "serviceId")

	w = s.do(t, http.MethodPost, "/api/accounts", gin.H{"serviceId": "netflix", "email": "x@example.com", "expirationDate": "2024-02-01", "maxProfiles": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/accounts/"+acct.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[services.AccountView](t, w)
	assert.Equal(t, "Netflix", view.ServiceName)
	assert.Equal(t, services.BandWarning, view.Band)
	assert.Equal(t, 2, view.DaysRemaining)

	w = s.do(t, http.MethodPut, "/api/accounts/"+acct.ID, gin.H{"email": "renewed@example.com", "expirationDate": "2024-03-01"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Account](t, w)
	assert.Equal(t, "renewed@example.com", updated.Email)
	assert.Equal(t, "secret", updated.Password)
	assert.Equal(t, 2, updated.MaxProfiles)

	w = s.do(t, http.MethodPut, "/api/accounts/missing", gin.H{"email": "a@b.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/accounts/"+acct.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]interface{}](t, w)["deleted"])
	assert.Len(t, s.store.Accounts(), 1)

	w = s.do(t, http.MethodDelete, "/api/accounts/"+acct.ID+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]interface{}](t, w)["deleted"])
	assert.Empty(t, s.store.Accounts())
}

func TestAccountSearchAndOrder(t *testing.T) {
	s := newTestServer(t)
	maria := s.createCustomer(t, "Maria Lopez")
	later := s.createAccount(t, "2024-03-01", 2)
	sooner := s.createAccount(t, "2024-01-15", 2)

	w := s.do(t, http.MethodPost, "/api/accounts/"+later.ID+"/profiles", gin.H{"name": "Main", "customerId": maria.ID, "price": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/accounts", nil)
	all := decode[[]services.AccountView](t, w)
	require.Len(t, all, 2)
	assert.Equal(t, sooner.ID, all[0].ID)
	assert.Equal(t, later.ID, all[1].ID)

	w = s.do(t, http.MethodGet, "/api/accounts?search=maria", nil)
	found := decode[[]services.AccountView](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, later.ID, found[0].ID)
}

func TestProfileRoutes(t *testing.T) {
	s := newTestServer(t)
	ana := s.createCustomer(t, "Ana")
	acct := s.createAccount(t, "2024-02-01", 1)
	base := "/api/accounts/" + acct.ID + "/profiles"

	w := s.do(t, http.MethodPost, base, gin.H{"name": "Kids", "customerId": ana.ID, "price": 12.5, "paymentStatus": "Pagado"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	profile := decode[models.Profile](t, w)
	assert.Equal(t, models.PaymentPaid, profile.PaymentStatus)

	w = s.do(t, http.MethodPost, base, gin.H{"name": "Extra", "customerId": ana.ID, "price": 5})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, base, gin.H{"name": "Ghost", "customerId": "ghost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, base+"/"+profile.ID, gin.H{"paymentStatus": "Pending", "notes": "late"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Profile](t, w)
	assert.Equal(t, models.PaymentPending, updated.PaymentStatus)
	assert.Equal(t, "Kids", updated.Name)
	assert.Equal(t, "late", updated.Notes)

	w = s.do(t, http.MethodPut, base+"/missing", gin.H{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/customers/"+ana.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodDelete, base+"/"+profile.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodDelete, "/api/customers/"+ana.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCustomerRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/customers", gin.H{"name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ana := s.createCustomer(t, "Ana")

	w = s.do(t, http.MethodPut, "/api/customers/"+ana.ID, gin.H{"phone": "555-0100"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Customer](t, w)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "555-0100", updated.Phone)

	w = s.do(t, http.MethodPut, "/api/customers/"+ana.ID, gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/customers/"+ana.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/customers", nil)
	assert.Len(t, decode[[]models.Customer](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/customers/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardAndReports(t *testing.T) {
	s := newTestServer(t)
	ana := s.createCustomer(t, "Ana")
	acct := s.createAccount(t, "2024-01-12", 3)
	base := "/api/accounts/" + acct.ID + "/profiles"
	for _, p := range []gin.H{
		{"name": "A", "customerId": ana.ID, "price": 10, "paymentStatus": "Paid"},
		{"name": "B", "customerId": ana.ID, "price": 5, "paymentStatus": "Pending"},
		{"name": "C", "customerId": ana.ID, "price": 20, "paymentStatus": "Paid"},
	} {
		w := s.do(t, http.MethodPost, base, p)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalAccounts":1,"soldProfiles":3,"totalRevenue":30,"pendingPayments":1,
		"expiringSoon":1,"expired":0,"warning":1,"active":0}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/reports", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode[services.ServiceReport](t, w)
	require.Len(t, report.Services, 1)
	assert.Equal(t, "Netflix", report.Services[0].Name)
	assert.Equal(t, "30", report.Services[0].Revenue.String())
}

func TestNotificationRoutes(t *testing.T) {
	s := newTestServer(t)
	// the watcher evaluates against the wall clock
	acct := s.createAccount(t, models.DateOf(time.Now().UTC().AddDate(0, 0, 2)).String(), 2)

	w := s.do(t, http.MethodPost, "/api/notifications/test/"+acct.ID, nil)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	w = s.do(t, http.MethodPut, "/api/settings/notifications", gin.H{"botToken": "123456:secret", "chatId": "42"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"botToken":"*********cret","chatId":"42","configured":true}`, w.Body.String())
	assert.Equal(t, "123456:secret", s.store.Settings().BotToken)

	w = s.do(t, http.MethodPost, "/api/notifications/test/"+acct.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entry := decode[models.NotificationEntry](t, w)
	assert.Equal(t, models.NotificationSent, entry.Status)
	assert.Contains(t, entry.Message, "owner@example.com")

	w = s.do(t, http.MethodPost, "/api/notifications/test/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/notifications/log", nil)
	assert.Len(t, decode[[]models.NotificationEntry](t, w), 2)

	w = s.do(t, http.MethodGet, "/api/notifications/expiring", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), acct.ID)
}
