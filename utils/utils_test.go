package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysUntil(start, start.Add(2*Day)))
	assert.Equal(t, 1, DaysUntil(start, start.Add(time.Hour)))
	assert.Equal(t, 0, DaysUntil(start, start.Add(-time.Hour)))
	assert.Equal(t, -1, DaysUntil(start, start.Add(-Day)))
	assert.Equal(t, start, BeginningOfDay(start.Add(13*time.Hour)))
}

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"a@b.com", "john.doe+tag@mail.example.org", "x@localhost"} {
		assert.True(t, ValidateEmail(ok), ok)
	}
	for _, bad := range []string{"", "plain", "@example.com", "a@", "a b@example.com"} {
		assert.False(t, ValidateEmail(bad), bad)
	}
	assert.True(t, IsBlank(" \t"))
	assert.False(t, IsBlank(" x "))
}

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithError(c, http.StatusConflict, "Service is still used")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Service is still used"}`, w.Body.String())
	assert.True(t, c.IsAborted())
}
