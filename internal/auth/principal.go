package auth

import (
	"context"
	"slices"
	"strings"
)

type contextKey struct{}

// Principal is the authenticated caller of a request.
type Principal struct {
	Subject  string
	TenantID string
	Roles    []string
	// Token is the raw bearer token, kept so outbound calls can forward it.
	Token string
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok && p != nil
}

// HasRole reports whether the principal holds role. Roles compare
// case-insensitively and an optional ROLE_ prefix is ignored on both sides.
func (p *Principal) HasRole(role string) bool {
	want := normalizeRole(role)
	return slices.ContainsFunc(p.Roles, func(r string) bool {
		return normalizeRole(r) == want
	})
}

func normalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(role, "ROLE_")
}
