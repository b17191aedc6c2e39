package http

import (
	"context"

	"greencommute-backend/internal/domain"
	"greencommute-backend/internal/security"
)

type contextKey string

const (
	claimsKey    contextKey = "claims"
	requestIDKey contextKey = "request_id"
)

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the authenticated caller's claims.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, error) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id attached by the middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
