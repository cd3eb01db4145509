package httpx

import "context"

type ctxKey string

const (
	CtxKeyAccountID ctxKey = "account_id"
	CtxKeyEmail     ctxKey = "email"
	CtxKeyName      ctxKey = "name"
)

// AccountIDFromCtx returns the authenticated account id, or "" when the
// request was not authenticated.
func AccountIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAccountID).(string); ok {
		return v
	}
	return ""
}

// EmailFromCtx returns the authenticated account's email claim.
func EmailFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyEmail).(string); ok {
		return v
	}
	return ""
}

// NameFromCtx returns the authenticated account's display name claim.
func NameFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyName).(string); ok {
		return v
	}
	return ""
}
