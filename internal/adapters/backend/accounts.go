package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
)

// Accounts is the client for the accounts backend: auth and vehicle
// registration.
type Accounts struct {
	Client
}

var (
	_ ports.Authenticator   = (*Accounts)(nil)
	_ ports.VehicleRegistry = (*Accounts)(nil)
)

func NewAccounts(client Client) *Accounts {
	return &Accounts{Client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (a *Accounts) Login(ctx context.Context, email, password string) (domain.AuthSession, error) {
	var payload authResponse
	err := a.do(ctx, request{
		method:   http.MethodPost,
		path:     "/api/auth/login",
		json:     loginRequest{Email: email, Password: password},
		fallback: statusTextFallback("Login failed"),
	}, &payload)
	if err != nil {
		return domain.AuthSession{}, err
	}
	if payload.Token == "" {
		return domain.AuthSession{}, errors.New("login response missing token")
	}

	return domain.AuthSession{Token: payload.Token, User: payload.User}, nil
}

func (a *Accounts) SignUp(ctx context.Context, fullName, email, password string) (domain.AuthSession, error) {
	var payload authResponse
	err := a.do(ctx, request{
		method:   http.MethodPost,
		path:     "/api/auth/register",
		json:     registerRequest{FullName: fullName, Email: email, Password: password},
		fallback: statusTextFallback("Sign up failed"),
	}, &payload)
	if err != nil {
		return domain.AuthSession{}, err
	}

	return domain.AuthSession{Token: payload.Token, User: payload.User}, nil
}

type vehicleRequest struct {
	Type    domain.VehicleType `json:"type"`
	Brand   string             `json:"brand"`
	Model   string             `json:"model"`
	Year    int                `json:"year"`
	Mileage int                `json:"mileage"`
}

func (a *Accounts) Register(ctx context.Context, token string, registration domain.Registration) error {
	if token == "" {
		return domain.ErrNotAuthenticated
	}

	return a.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/vehicles",
		token:  token,
		json: vehicleRequest{
			Type:    registration.VehicleType,
			Brand:   registration.Brand,
			Model:   registration.Model,
			Year:    registration.Year,
			Mileage: registration.Mileage,
		},
		fallback: statusTextFallback("Submission failed"),
	}, nil)
}

func statusTextFallback(prefix string) func(*http.Response, []byte) string {
	return func(resp *http.Response, _ []byte) string {
		return prefix + ": " + http.StatusText(resp.StatusCode)
	}
}
