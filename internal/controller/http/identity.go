package http

import "context"

// Roles issued by the identity provider.
const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Identity is the authenticated caller as asserted by the identity
// provider's token. The booking service trusts UserID for ownership
// checks; ClassID is set for class-scoped (student) callers only.
type Identity struct {
	UserID  int64
	Role    string
	ClassID int64
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity stores the caller identity on the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the caller identity, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
