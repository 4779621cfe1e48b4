package constants

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// User role
const (
	RoleCustomer     = 0
	RoleSuperAdmin   = 1
	RoleOwner        = 2
	RoleReceptionist = 3
)

// Booking status
const (
	BookingStatusPending   = 0
	BookingStatusConfirmed = 1
	BookingStatusCompleted = 2
	BookingStatusCancelled = 3
)

// Payment method
const (
	PaymentMethodCash   = 0
	PaymentMethodBank   = 1
	PaymentMethodMomo   = 2
	PaymentMethodStripe = 3
)

// Payment status
const (
	PaymentStatusPaid     = 1
	PaymentStatusRefunded = 2
)

// Cancelled by
const (
	CancelledByCustomer = 0
	CancelledByOwner    = 1
)
