package domain

import "errors"

var (
	ErrNotAuthenticated   = errors.New("you must be logged in to add a vehicle")
	ErrMissingVehicleInfo = errors.New("vehicle data is missing")
	ErrReplyInFlight      = errors.New("a reply is already in progress")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSchemaUnavailable  = errors.New("failed to load ECU schema, the tuning module is unavailable")
	ErrEmptyMessage       = errors.New("message is empty")
	ErrMissingImage       = errors.New("please upload an image of the part")
	ErrMissingVehicleType = errors.New("please select a vehicle type first")
	ErrKeyNotFound        = errors.New("key not found")
)
