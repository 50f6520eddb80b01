package enum

// Order lifecycle states. The orders table CHECK-constrains these values.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusReady      = "READY"
	OrderStatusServed     = "SERVED"
)

// User roles. The users table CHECK-constrains these values.
const (
	UserRoleAdmin = "ADMIN"
	UserRoleStaff = "STAFF"
)
