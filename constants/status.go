package constants

// Reservation status
const (
	ResStatusHeld      = 1
	ResStatusApproved  = 2
	ResStatusCancelled = 3
)

// User roles (claim values minted by the identity service)
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Paging
const (
	DefaultPageSize = 5
	MaxPageSize     = 50
)
