package internal

import (
	"context"
)

// Role values stored on users and carried in token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the per-request identity derived from a verified token.
// Downstream code reads only this, never the raw Authorization header.
type Principal struct {
	UserID string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type ctxKey string

const contextPrincipalKey ctxKey = "principal"

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextPrincipalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(contextPrincipalKey).(Principal)
	return p, ok
}
