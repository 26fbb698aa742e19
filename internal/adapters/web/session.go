package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionCookieName = "motorsense_session"

type requestSessionKey struct{}

// requestSession is everything a page handler knows about its visitor.
type requestSession struct {
	store  *sessionStore
	state  *sessionState
	toasts *toastCollector
}

func sessionFrom(ctx context.Context) *requestSession {
	rs, _ := ctx.Value(requestSessionKey{}).(*requestSession)
	return rs
}

// withSession resolves the cookie to a stored web session, creating one when
// the cookie is absent, unknown or expired.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, created, err := s.loadSession(r)
		if err != nil {
			s.logger.Error("load web session", zap.Error(err))
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    session.ID,
				Path:     "/",
				Expires:  session.ExpiresAt,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		collector := &toastCollector{}
		rs := &requestSession{
			store:  &sessionStore{repo: s.sessions, session: session},
			state:  s.states.get(session.ID, s.clock.Now()),
			toasts: collector,
		}

		ctx := context.WithValue(r.Context(), requestSessionKey{}, rs)
		ctx = withToastSink(ctx, collector.add)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loadSession(r *http.Request) (domain.WebSession, bool, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		session, err := s.sessions.Get(r.Context(), cookie.Value)
		if err == nil {
			return session, false, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.WebSession{}, false, err
		}
	}

	now := s.clock.Now()
	session := domain.WebSession{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.SessionTTL),
	}
	if err := s.sessions.Save(r.Context(), session); err != nil {
		return domain.WebSession{}, false, fmt.Errorf("create web session: %w", err)
	}

	return session, true, nil
}

func (s *Server) sessionService(rs *requestSession) *application.SessionService {
	return application.NewSessionService(rs.store, s.services.Accounts, s.logger)
}

// sessionStore exposes the auth half of one web session under the same token
// and user keys the CLI keeps on disk.
type sessionStore struct {
	repo ports.SessionRepository

	mu      sync.Mutex
	session domain.WebSession
}

var _ ports.KeyValueStore = (*sessionStore)(nil)

func (s *sessionStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case domain.SessionKeyToken:
		if s.session.Auth.Token != "" {
			return s.session.Auth.Token, nil
		}
	case domain.SessionKeyUser:
		if s.session.Auth.User != nil {
			raw, err := json.Marshal(s.session.Auth.User)
			if err != nil {
				return "", fmt.Errorf("encode session user: %w", err)
			}
			return string(raw), nil
		}
	}

	return "", fmt.Errorf("entry %q: %w", key, domain.ErrKeyNotFound)
}

func (s *sessionStore) Put(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case domain.SessionKeyToken:
		s.session.Auth.Token = value
	case domain.SessionKeyUser:
		var user domain.User
		if err := json.Unmarshal([]byte(value), &user); err != nil {
			return fmt.Errorf("decode session user: %w", err)
		}
		s.session.Auth.User = &user
	default:
		return fmt.Errorf("unsupported session key %q", key)
	}

	return s.repo.Save(ctx, s.session)
}

func (s *sessionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case domain.SessionKeyToken:
		s.session.Auth.Token = ""
	case domain.SessionKeyUser:
		s.session.Auth.User = nil
	default:
		return nil
	}

	return s.repo.Save(ctx, s.session)
}

func (s *sessionStore) id() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.ID
}

// sessionState is the per-visitor memory the pages share: open diagnosis
// chats, the tuning bench and toasts waiting for the next page.
type sessionState struct {
	mu       sync.Mutex
	chats    map[string]*application.ChatSession
	tuning   *application.TuningSession
	flash    []domain.Toast
	lastSeen time.Time
}

func (st *sessionState) chat(key string, create func() *application.ChatSession) *application.ChatSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	if chat, ok := st.chats[key]; ok {
		return chat
	}
	chat := create()
	st.chats[key] = chat
	return chat
}

func (st *sessionState) tuningSession(create func() *application.TuningSession) *application.TuningSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.tuning == nil {
		st.tuning = create()
	}
	return st.tuning
}

func (st *sessionState) pushFlash(toasts []domain.Toast) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.flash = append(st.flash, toasts...)
}

func (st *sessionState) popFlash() []domain.Toast {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := st.flash
	st.flash = nil
	return out
}

// stateStore holds sessionState by web session id. Nothing here survives a
// restart.
type stateStore struct {
	mu     sync.Mutex
	states map[string]*sessionState
}

func newStateStore() *stateStore {
	return &stateStore{states: make(map[string]*sessionState)}
}

func (s *stateStore) get(id string, now time.Time) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[id]
	if !ok {
		st = &sessionState{chats: make(map[string]*application.ChatSession)}
		s.states[id] = st
	}
	st.lastSeen = now

	return st
}

func (s *stateStore) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, id)
}

// evictIdle drops state not touched since cutoff and reports how many went.
func (s *stateStore) evictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, st := range s.states {
		if st.lastSeen.Before(cutoff) {
			delete(s.states, id)
			evicted++
		}
	}

	return evicted
}
