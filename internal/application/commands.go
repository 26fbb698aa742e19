package application

import (
	"errors"

	"github.com/bnema/motorsense/internal/domain"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingFullName    = errors.New("full name is required")
)

type LoginCommand struct {
	Email    string
	Password string
}

type SignUpCommand struct {
	FullName string
	Email    string
	Password string
}

type RegisterVehicleCommand struct {
	Session      domain.AuthSession
	Registration domain.Registration
}

type OptimizeCommand struct {
	VehicleState map[string]string
	Goal         domain.Goal
}

type IdentifyCommand struct {
	VehicleType string
	Filename    string
	ContentType string
	Image       []byte
}
