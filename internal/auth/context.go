package auth

import "context"

type contextKey string

const (
	userIDKey  contextKey = "user_id"
	storeIDKey contextKey = "store_id"
	roleKey    contextKey = "role"
)

// Actor is the already-authenticated identity attached by the transport
// middleware. Authorization itself happens upstream; the core trusts this.
type Actor struct {
	UserID  string
	StoreID string
	Role    string
}

func WithActor(ctx context.Context, a Actor) context.Context {
	ctx = context.WithValue(ctx, userIDKey, a.UserID)
	ctx = context.WithValue(ctx, storeIDKey, a.StoreID)
	ctx = context.WithValue(ctx, roleKey, a.Role)
	return ctx
}

func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(userIDKey).(string); ok {
		return val
	}
	return ""
}

func GetStoreID(ctx context.Context) string {
	if val, ok := ctx.Value(storeIDKey).(string); ok {
		return val
	}
	return ""
}

func GetRole(ctx context.Context) string {
	if val, ok := ctx.Value(roleKey).(string); ok {
		return val
	}
	return ""
}
