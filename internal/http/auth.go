package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cashbook/internal/core"
)

const sessionCookieName = "cashbook_session"

type session struct {
	userID    string
	username  string
	expiresAt time.Time
}

// sessionStore keeps sessions in memory with TTL expiry.
type sessionStore struct {
	mu           sync.Mutex
	sessions     map[string]session
	ttl          time.Duration
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

func newSessionStore(ttl time.Duration) *sessionStore {
	st := &sessionStore{
		sessions:    make(map[string]session),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}
	go st.startCleanup()
	return st
}

func (st *sessionStore) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.mu.Lock()
			now := time.Now()
			for token, s := range st.sessions {
				if now.After(s.expiresAt) {
					delete(st.sessions, token)
				}
			}
			st.mu.Unlock()
		case <-st.stopCleanup:
			return
		}
	}
}

func (st *sessionStore) stop() {
	st.shutdownOnce.Do(func() {
		if st.stopCleanup != nil {
			close(st.stopCleanup)
		}
	})
}

func (st *sessionStore) create(userID, username string) string {
	token := newSessionToken()
	st.mu.Lock()
	st.sessions[token] = session{
		userID:    userID,
		username:  username,
		expiresAt: time.Now().Add(st.ttl),
	}
	st.mu.Unlock()
	return token
}

func (st *sessionStore) get(token string) (session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[token]
	if !ok {
		return session{}, false
	}
	if time.Now().After(s.expiresAt) {
		delete(st.sessions, token)
		return session{}, false
	}
	return s, true
}

func (st *sessionStore) delete(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

func newSessionToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(bytes)
}

// HashPassword produces the bcrypt hash stored for a user.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	user, err := s.users.GetUser(r.Context(), req.Username)
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token := s.sessions.create(user.ID, user.Username)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.logger.InfoContext(r.Context(), "User logged in", "username", user.Username)
	writeJSON(w, http.StatusOK, loginResponse{Username: user.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.sessions.delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// requireSession resolves the session cookie to a user id and passes
// it to the handler.
func (s *Server) requireSession(next func(w http.ResponseWriter, r *http.Request, userID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		sess, ok := s.sessions.get(cookie.Value)
		if !ok {
			writeError(w, http.StatusUnauthorized, "session expired")
			return
		}
		next(w, r, sess.userID)
	}
}
