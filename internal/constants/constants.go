package constants

// Context keys set by the auth middleware.
const (
	ContextKeyUserID   = "userID"
	ContextKeyUserRole = "userRole"
)

// MinPasswordLength is the minimum accepted password length for
// registration, profile changes and password resets.
const MinPasswordLength = 6

// Pagination bounds for list endpoints.
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
