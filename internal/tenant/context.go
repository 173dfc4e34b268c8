// Package tenant binds the current tenant to a request context and scopes
// every gorm statement to it.
package tenant

import (
	"context"
	"crypto/md5"

	"github.com/google/uuid"
)

type contextKey struct{}

const (
	bootstrapLabel = "BOOTSTRAP"
	canonicalLen   = 36
)

// Bootstrap is the tenant used when no identifier is bound to the context.
var Bootstrap = nameUUID([]byte(bootstrapLabel))

// WithID returns a copy of ctx bound to the raw tenant identifier.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// CurrentID returns the raw identifier bound to ctx. An empty identifier is
// reported as unbound.
func CurrentID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(contextKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Resolve maps the identifier bound to ctx to its canonical UUID.
func Resolve(ctx context.Context) uuid.UUID {
	id, ok := CurrentID(ctx)
	if !ok {
		return Bootstrap
	}
	return ResolveID(id)
}

// ResolveID parses raw as a canonical dashed UUID, falling back to a
// name-derived UUID for every other label. Braced, urn:uuid: and undashed
// forms are labels, not UUIDs.
func ResolveID(raw string) uuid.UUID {
	if raw == "" {
		return Bootstrap
	}
	if len(raw) == canonicalLen {
		if id, err := uuid.Parse(raw); err == nil {
			return id
		}
	}
	return nameUUID([]byte(raw))
}

// nameUUID builds a version 3 UUID from the MD5 of name with no namespace
// prefix.
func nameUUID(name []byte) uuid.UUID {
	sum := md5.Sum(name)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.UUID(sum)
}
