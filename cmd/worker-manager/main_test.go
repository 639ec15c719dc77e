package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeBroker struct {
	err error
}

func (f fakeBroker) HealthCheck(context.Context) error { return f.err }

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := retryWithBackoff(func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("connection refused")
		}
		return nil
	}, 5, time.Millisecond, zaptest.NewLogger(t), "dial")

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	calls := 0
	err := retryWithBackoff(func() error {
		calls++
		return fmt.Errorf("unavailable")
	}, 3, time.Millisecond, zaptest.NewLogger(t), "dial")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial failed after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestHealthEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		broker         fakeBroker
		expectedCode   int
		expectedStatus string
	}{
		{"health", "/health", fakeBroker{err: fmt.Errorf("down")}, http.StatusOK, "healthy"},
		{"ready", "/ready", fakeBroker{}, http.StatusOK, "ready"},
		{"not ready", "/ready", fakeBroker{err: fmt.Errorf("deadline exceeded")}, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newMux(tt.broker).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedStatus, body["status"])
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux(fakeBroker{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
