// Package auth carries the signed-in session through a request context.
package auth

import "context"

type contextKey struct{}

// Session is the request-scoped identity of a signed-in family member.
type Session struct {
	UserID     int64
	UserName   string
	FamilyCode string
	SessionID  int64
}

// Valid reports whether both the display name and family code are present.
func (s Session) Valid() bool {
	return s.UserName != "" && s.FamilyCode != ""
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

func FamilyCode(ctx context.Context) string {
	s, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return s.FamilyCode
}
