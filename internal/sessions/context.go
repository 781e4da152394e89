package sessions

import "context"

type sessionIDKey struct{}

// ContextWithID returns a new context carrying the session ID.
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// IDFromContext extracts the session ID from the context, or "" if absent.
func IDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}
