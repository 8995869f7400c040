package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	username string
	password string
	id       uuid.UUID
	err      error
}

func (f *fakeVerifier) Login(ctx context.Context, username, password string) (uuid.UUID, bool, error) {
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	if username == f.username && password == f.password {
		return f.id, true, nil
	}
	return uuid.Nil, false, nil
}

func TestBasicAuth(t *testing.T) {
	accountID := uuid.New()
	verifier := &fakeVerifier{username: "alice", password: "P@ssw0rd", id: accountID}

	var gotID uuid.UUID
	var gotOK bool
	handler := BasicAuth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = AccountID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid credentials attach the identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
		req.SetBasicAuth("alice", "P@ssw0rd")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotOK)
		assert.Equal(t, accountID, gotID)
	})

	t.Run("missing header yields 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("wrong password yields the same 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
		req.SetBasicAuth("alice", "wrong")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user yields the same 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
		req.SetBasicAuth("nobody", "P@ssw0rd")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("verifier fault yields 500, not 401", func(t *testing.T) {
		broken := BasicAuth(&fakeVerifier{err: assert.AnError})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
		req.SetBasicAuth("alice", "P@ssw0rd")
		rec := httptest.NewRecorder()

		broken.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
