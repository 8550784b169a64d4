package httpx

import "context"

type ctxKey string

const (
	// CtxKeyAccountID carries the authenticated account's id.
	CtxKeyAccountID ctxKey = "account_id"
	// CtxKeyUsername carries the authenticated account's username.
	CtxKeyUsername ctxKey = "username"
)

// AccountIDFromContext returns the authenticated account id, if any.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyAccountID).(string)
	return v, ok && v != ""
}

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUsername).(string)
	return v, ok && v != ""
}
