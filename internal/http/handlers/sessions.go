package handlers

import (
	"net/http"
	"sync"

	"futureself/internal/wizard"
)

const sessionCookie = "fs_session"

// SessionStore maps session cookies to wizard sessions. Only the registry
// itself is locked; each session is owned exclusively by its interaction.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*wizard.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*wizard.Session)}
}

// Ensure returns the request's session, creating one (and setting the
// cookie) when none exists.
func (st *SessionStore) Ensure(w http.ResponseWriter, r *http.Request) *wizard.Session {
	if s := st.Lookup(r); s != nil {
		return s
	}

	s := wizard.NewSession()
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Lookup returns the request's session or nil.
func (st *SessionStore) Lookup(r *http.Request) *wizard.Session {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[c.Value]
}
