package palisade

import "context"

type contextKey int

const ctxKeyPrincipal contextKey = iota

// WithPrincipal returns a context carrying the authenticated principal.
// The platform's authentication middleware attaches the principal once per
// request; everything downstream reads it via PrincipalFromContext.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext extracts the authenticated principal from the context.
// The second return value is false when no principal is attached.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
