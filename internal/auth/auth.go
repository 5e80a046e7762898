package auth

import (
	"context"
)

type contextKey string

const (
	playerIDKey contextKey = "playerID"
	coupleIDKey contextKey = "coupleID"
)

// GetPlayerIDFromContext retrieves the verified player ID from the context
func GetPlayerIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(playerIDKey).(string); ok {
		return id
	}
	return ""
}

// GetCoupleIDFromContext retrieves the verified couple ID from the context
func GetCoupleIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(coupleIDKey).(string); ok {
		return id
	}
	return ""
}

// SetIdentityInContext sets the verified player and couple IDs in the context
func SetIdentityInContext(ctx context.Context, playerID, coupleID string) context.Context {
	ctx = context.WithValue(ctx, playerIDKey, playerID)
	return context.WithValue(ctx, coupleIDKey, coupleID)
}
