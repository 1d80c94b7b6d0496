package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/mandilink-backend/pkg/enums"
)

type contextKey string

const (
	ctxActorID contextKey = "actor_id"
	ctxRole    contextKey = "actor_role"
)

func ActorIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) enums.Role {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return enums.Role(v)
	}
	return ""
}

// ActorUUIDFromContext parses the authenticated actor id. It returns Nil when
// the request is unauthenticated or the value is malformed.
func ActorUUIDFromContext(ctx context.Context) uuid.UUID {
	id, err := uuid.Parse(ActorIDFromContext(ctx))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// WithActor injects the actor identity into the context.
func WithActor(ctx context.Context, actorID string, role enums.Role) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxActorID, actorID)
	return context.WithValue(ctx, ctxRole, string(role))
}
