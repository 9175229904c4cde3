package services

import "github.com/arda/campushub/internal/app/models"

// Principal is the authenticated identity acting on a request
type Principal struct {
	ID   int64
	Role models.UserRole
}

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}
