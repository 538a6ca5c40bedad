// Package session keeps short-lived server-side state across the reload
// that follows a settings save.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

const flashKey = "flash"

// NewManager creates an SCS session manager backed by the application DB.
// The driver parameter selects the appropriate store: "mysql", "postgres", or
// "sqlite3" (default).
func NewManager(db *sqlx.DB, driver string, lifetime time.Duration, secure bool) *scs.SessionManager {
	sm := scs.New()
	switch driver {
	case "mysql":
		sm.Store = mysqlstore.New(db.DB)
	case "postgres":
		sm.Store = postgresstore.New(db.DB)
	default: // sqlite3
		sm.Store = sqlite3store.New(db.DB)
	}
	sm.Lifetime = lifetime
	sm.Cookie.Name = "surfx_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	return sm
}

// Flashes stores one-time messages in a session.
type Flashes struct {
	sm *scs.SessionManager
}

// NewFlashes wraps sm.
func NewFlashes(sm *scs.SessionManager) *Flashes {
	return &Flashes{sm: sm}
}

// Put queues msg for the next page view.
func (f *Flashes) Put(ctx context.Context, msg string) {
	f.sm.Put(ctx, flashKey, msg)
}

// Pop returns and clears the queued message, "" when there is none.
func (f *Flashes) Pop(ctx context.Context) string {
	return f.sm.PopString(ctx, flashKey)
}
