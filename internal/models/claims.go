package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// User permissions
	PermissionAccountRead    = "account:read"
	PermissionTransferWrite  = "transfer:write"
	PermissionCardRead       = "card:read"
	PermissionCardWrite      = "card:write"
	PermissionLoanRead       = "loan:read"
	PermissionLoanWrite      = "loan:write"
	PermissionBillRead       = "bill:read"
	PermissionBillWrite      = "bill:write"
	PermissionChangePassword = "user:change-password"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionAccountRead,
			PermissionTransferWrite,
			PermissionCardRead,
			PermissionCardWrite,
			PermissionLoanRead,
			PermissionLoanWrite,
			PermissionBillRead,
			PermissionBillWrite,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case "user":
		return []string{
			PermissionAccountRead,
			PermissionTransferWrite,
			PermissionCardRead,
			PermissionCardWrite,
			PermissionLoanRead,
			PermissionLoanWrite,
			PermissionBillRead,
			PermissionBillWrite,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
