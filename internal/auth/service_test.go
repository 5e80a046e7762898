package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewService([]byte("secret"))

	token, err := service.SignToken("player-a", "couple-1", time.Hour)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "player-a", claims.PlayerID)
	assert.Equal(t, "couple-1", claims.CoupleID)
}

func TestValidateTokenRejections(t *testing.T) {
	service := NewService([]byte("secret"))

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService([]byte("other-secret"))
		token, err := other.SignToken("player-a", "couple-1", time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := service.SignToken("player-a", "couple-1", -time.Minute)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing identity claims", func(t *testing.T) {
		token, err := service.SignToken("", "couple-1", time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMiddleware(t *testing.T) {
	service := NewService([]byte("secret"))

	var gotPlayerID, gotCoupleID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPlayerID = GetPlayerIDFromContext(r.Context())
		gotCoupleID = GetCoupleIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := service.Middleware(next)

	t.Run("valid bearer token", func(t *testing.T) {
		token, err := service.SignToken("player-a", "couple-1", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "player-a", gotPlayerID)
		assert.Equal(t, "couple-1", gotCoupleID)
	})

	t.Run("no header passes through anonymously", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, gotPlayerID)
		assert.Empty(t, gotCoupleID)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestContextWithoutIdentity(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetPlayerIDFromContext(ctx))
	assert.Empty(t, GetCoupleIDFromContext(ctx))
}
