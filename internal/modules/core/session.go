package core

import (
	"context"

	"github.com/google/uuid"
)

type ContextKey string

const SessionContextKey ContextKey = "session"

type ContextSession struct {
	UserID     uuid.UUID
	Privileges []string
}

func (s ContextSession) HasPrivilege(privilege string) bool {
	for _, p := range s.Privileges {
		if p == privilege {
			return true
		}
	}

	return false
}

func WithSession(ctx context.Context, session ContextSession) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

// Session returns the authenticated session, ok is false for anonymous requests.
func Session(ctx context.Context) (ContextSession, bool) {
	session, ok := ctx.Value(SessionContextKey).(ContextSession)
	return session, ok
}
