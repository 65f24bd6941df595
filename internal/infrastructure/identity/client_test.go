package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startupops-api/internal/config"
	"startupops-api/pkg/errors"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(&config.IdentityConfig{
		URL:        srv.URL,
		AnonKey:    "anon-key",
		ServiceKey: "service-key",
		Timeout:    5 * time.Second,
	})
}

func TestVerifyTokenSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-1","email":"founder@acme.io","user_metadata":{"full_name":"Jane Founder"}}`))
	}))
	defer srv.Close()

	principal, err := newTestClient(srv).VerifyToken(context.Background(), "tok-123")

	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.ID)
	assert.Equal(t, "founder@acme.io", principal.Email)
	assert.Equal(t, "Jane Founder", principal.UserMetadata["full_name"])
}

func TestVerifyTokenRejected(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized},
		{name: "forbidden", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			principal, err := newTestClient(srv).VerifyToken(context.Background(), "bad-token")

			assert.Nil(t, principal)
			assert.ErrorIs(t, err, errors.ErrTokenInvalid)
		})
	}
}

func TestVerifyTokenEmptyUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"","email":""}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).VerifyToken(context.Background(), "tok-123")

	assert.ErrorIs(t, err, errors.ErrTokenInvalid)
}

func TestVerifyTokenProviderUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).VerifyToken(context.Background(), "tok-123")

	require.Error(t, err)
	assert.Equal(t, errors.CodeIdentityProviderError, errors.AsAppError(err).Code)
}

func TestAdminCreateUserSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		var body adminCreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "founder@acme.io", body.Email)
		assert.Equal(t, "secret123", body.Password)
		assert.True(t, body.EmailConfirm)
		assert.Equal(t, "Jane Founder", body.UserMetadata["full_name"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"user-9","email":"founder@acme.io","user_metadata":{"full_name":"Jane Founder"}}`))
	}))
	defer srv.Close()

	principal, err := newTestClient(srv).AdminCreateUser(context.Background(), "founder@acme.io", "secret123", "Jane Founder")

	require.NoError(t, err)
	assert.Equal(t, "user-9", principal.ID)
}

func TestAdminCreateUserDerivesNameFromEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body adminCreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "founder", body.UserMetadata["full_name"])

		w.Write([]byte(`{"id":"user-9","email":"founder@acme.io"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).AdminCreateUser(context.Background(), "founder@acme.io", "secret123", "")

	require.NoError(t, err)
}

func TestAdminCreateUserDuplicateEmail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "error code",
			status: http.StatusUnprocessableEntity,
			body:   `{"code":422,"error_code":"email_exists","msg":"Email address already exists"}`,
		},
		{
			name:   "gotrue message",
			status: http.StatusBadRequest,
			body:   `{"msg":"A user with this email address has already been registered"}`,
		},
		{
			name:   "bare conflict status",
			status: http.StatusConflict,
			body:   `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv).AdminCreateUser(context.Background(), "founder@acme.io", "secret123", "Jane")

			assert.ErrorIs(t, err, errors.ErrEmailRegistered)
		})
	}
}

func TestAdminCreateUserProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"upstream timeout"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).AdminCreateUser(context.Background(), "founder@acme.io", "secret123", "Jane")

	require.Error(t, err)
	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.CodeIdentityProviderError, appErr.Code)
	assert.Contains(t, appErr.Err.Error(), "upstream timeout")
}
