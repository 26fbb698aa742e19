package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"go.uber.org/zap"
)

// SessionService owns the client-side auth session. Callers load it once and
// pass the returned value around.
type SessionService struct {
	store  ports.KeyValueStore
	auth   ports.Authenticator
	logger *zap.Logger
}

func NewSessionService(store ports.KeyValueStore, auth ports.Authenticator, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SessionService{store: store, auth: auth, logger: logger}
}

// Load reads the token and user keys. A missing token is an anonymous
// session; an unreadable user record clears both keys.
func (s *SessionService) Load(ctx context.Context) (domain.AuthSession, error) {
	token, err := s.store.Get(ctx, domain.SessionKeyToken)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return domain.AuthSession{}, nil
		}
		return domain.AuthSession{}, fmt.Errorf("load session token: %w", err)
	}

	rawUser, err := s.store.Get(ctx, domain.SessionKeyUser)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return domain.AuthSession{Token: token}, nil
		}
		return domain.AuthSession{}, fmt.Errorf("load session user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn("stored user is corrupt, clearing session", zap.Error(err))
		if clearErr := s.clear(ctx); clearErr != nil {
			return domain.AuthSession{}, fmt.Errorf("clear corrupt session: %w", clearErr)
		}
		return domain.AuthSession{}, nil
	}

	return domain.AuthSession{Token: token, User: &user}, nil
}

func (s *SessionService) Login(ctx context.Context, cmd LoginCommand) (domain.AuthSession, error) {
	if strings.TrimSpace(cmd.Email) == "" || cmd.Password == "" {
		return domain.AuthSession{}, ErrMissingCredentials
	}

	session, err := s.auth.Login(ctx, strings.TrimSpace(cmd.Email), cmd.Password)
	if err != nil {
		return domain.AuthSession{}, fmt.Errorf("login: %w", err)
	}

	if err := s.persist(ctx, session); err != nil {
		return domain.AuthSession{}, err
	}

	return session, nil
}

func (s *SessionService) SignUp(ctx context.Context, cmd SignUpCommand) (domain.AuthSession, error) {
	if strings.TrimSpace(cmd.FullName) == "" {
		return domain.AuthSession{}, ErrMissingFullName
	}
	if strings.TrimSpace(cmd.Email) == "" || cmd.Password == "" {
		return domain.AuthSession{}, ErrMissingCredentials
	}

	session, err := s.auth.SignUp(ctx, strings.TrimSpace(cmd.FullName), strings.TrimSpace(cmd.Email), cmd.Password)
	if err != nil {
		return domain.AuthSession{}, fmt.Errorf("sign up: %w", err)
	}
	// Some deployments register without issuing a token; the user then logs in.
	if !session.IsAuthenticated() {
		return session, nil
	}

	if err := s.persist(ctx, session); err != nil {
		return domain.AuthSession{}, err
	}

	return session, nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *SessionService) persist(ctx context.Context, session domain.AuthSession) error {
	if !session.IsAuthenticated() {
		return fmt.Errorf("persist session: %w", domain.ErrNotAuthenticated)
	}

	user := domain.User{}
	if session.User != nil {
		user = *session.User
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	if err := s.store.Put(ctx, domain.SessionKeyToken, session.Token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	if err := s.store.Put(ctx, domain.SessionKeyUser, string(rawUser)); err != nil {
		if rollbackErr := s.store.Delete(ctx, domain.SessionKeyToken); rollbackErr != nil {
			return fmt.Errorf("store session user and rollback token: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("store session user: %w", err)
	}

	return nil
}

func (s *SessionService) clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{domain.SessionKeyToken, domain.SessionKeyUser} {
		if err := s.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}
