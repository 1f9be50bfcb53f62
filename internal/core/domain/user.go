package domain

// UserRole is the permission level of a user. Roles form a strict hierarchy;
// see RoleRank.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleSeller   UserRole = "seller"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

// RoleRank returns the hierarchy rank of a role; unknown roles rank zero.
func RoleRank(r UserRole) int {
	switch r {
	case RoleCustomer:
		return 1
	case RoleSeller:
		return 2
	case RoleManager:
		return 3
	case RoleAdmin:
		return 4
	default:
		return 0
	}
}

// HasPermission reports whether role meets or exceeds the required role.
func HasPermission(role, required UserRole) bool {
	return RoleRank(role) >= RoleRank(required)
}

// User is an application user. The identity service only stores credentials
// and answers permission checks; sessions are managed elsewhere.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"passwordHash"`
	Email        string   `json:"email,omitempty"`
	Role         UserRole `json:"role"`
	LastLoginAt  *string  `json:"lastLoginAt"`
	Active       bool     `json:"active"`
	AuditFields
}
