package ctxutil

import (
	"context"
	"strings"
)

type ctxKey string

const (
	actorKey     ctxKey = "actor"
	requestIDKey ctxKey = "request_id"
	remoteKey    ctxKey = "remote_addr"
)

// DefaultActor is reported when no admin is attached to the context.
const DefaultActor = "system"

// WithActor stores the acting admin's username in the context.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, strings.TrimSpace(actor))
}

// ActorFromCtx extracts the actor from the context.
// Returns DefaultActor if the value is missing, blank, or wrong type.
func ActorFromCtx(ctx context.Context) string {
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return DefaultActor
	}
	return actor
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRemoteAddr stores the client address in the context.
func WithRemoteAddr(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, remoteKey, addr)
}

// RemoteAddrFromCtx extracts the client address from the context.
func RemoteAddrFromCtx(ctx context.Context) string {
	addr, _ := ctx.Value(remoteKey).(string)
	return addr
}
