package socialtenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant matches the app and tenant IDs.
	ErrTenantNotFound = errors.New("social tenant not found")

	// ErrTenantDisabled is returned when a tenant exists but has been disabled.
	ErrTenantDisabled = errors.New("social tenant is disabled")

	ErrMissingAppID    = errors.New("social tenant app ID is required")
	ErrMissingTenantID = errors.New("social tenant ID is required")
)
