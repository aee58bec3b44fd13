package sheet

import "context"

// The session token rides on the request context rather than in a package
// global, so concurrent requests for different users never share credentials.

type tokenKey struct{}

// WithToken returns a context carrying the session token to attach to
// outgoing calls. An empty token means anonymous.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext extracts the session token, or "" when none is present.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}
