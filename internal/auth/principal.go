package auth

import (
	"context"

	"library-store/internal/domain/role"
)

type Principal struct {
	CustomerID int64
	Email      string
	Roles      []string
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// DevelopmentPrincipal is attached to requests when authentication is disabled.
func DevelopmentPrincipal() *Principal {
	return &Principal{Email: "dev@localhost", Roles: role.All()}
}
