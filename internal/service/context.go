package service

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const userIDKey contextKey = "actor_user_id"

// WithUserID attaches the authenticated user's id to the context so audit
// entries can record who performed an action. Handlers call this with the
// id the auth middleware extracted from the JWT.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the acting user's id, or nil when the action
// was unauthenticated or system-initiated.
func UserIDFromContext(ctx context.Context) *uuid.UUID {
	raw, ok := ctx.Value(userIDKey).(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
