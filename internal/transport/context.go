package transport

import "context"

type ctxKey string

const subjectKey ctxKey = "subject"

// Subject is the authenticated user as seen by authorization guards. The auth
// middleware resolves the token to a concrete user and stores it here; guards
// only need the predicate surface.
type Subject interface {
	GetID() int64
	GetEmail() string
	HasPermission(name string) bool
	HasRole(name string) bool
	Superuser() bool
}

func UserFromContext(ctx context.Context) (Subject, bool) {
	if ctx == nil {
		return nil, false
	}
	subject, ok := ctx.Value(subjectKey).(Subject)
	return subject, ok
}

func ContextWithUser(ctx context.Context, subject Subject) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}
