package leadcapture

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

func TestSubmitSuccess(t *testing.T) {
	var gotEmail string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req subscribeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotEmail = req.Email
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	svc := New(srv.URL, testTimeout, zerolog.Nop())
	assert.Equal(t, StatusIdle, svc.Status())

	require.NoError(t, svc.Submit(context.Background(), "tree.hugger@example.com"))
	assert.Equal(t, "tree.hugger@example.com", gotEmail)
	assert.Equal(t, StatusSuccess, svc.Status())
	assert.Empty(t, svc.Message())
}

func TestSubmitInvalidEmail(t *testing.T) {
	svc := New("https://unused.example.com", testTimeout, zerolog.Nop())

	for _, email := range []string{"", "   ", "not-an-email"} {
		err := svc.Submit(context.Background(), email)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
		assert.Equal(t, StatusError, svc.Status())
		assert.NotEmpty(t, svc.Message())
	}
}

func TestSubmitEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := New(srv.URL, testTimeout, zerolog.Nop())
	err := svc.Submit(context.Background(), "a@b.co")
	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, StatusError, svc.Status())
}

func TestSubmitNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	svc := New(srv.URL, testTimeout, zerolog.Nop())
	err := svc.Submit(context.Background(), "a@b.co")
	assert.ErrorIs(t, err, ErrSubmitFailed)
}

func TestStatusRecovery(t *testing.T) {
	// A failed submission followed by a successful one clears the error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := New(srv.URL, testTimeout, zerolog.Nop())
	require.Error(t, svc.Submit(context.Background(), "nope"))
	assert.Equal(t, StatusError, svc.Status())

	require.NoError(t, svc.Submit(context.Background(), "a@b.co"))
	assert.Equal(t, StatusSuccess, svc.Status())
	assert.Empty(t, svc.Message())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", Status(9).String())
}
