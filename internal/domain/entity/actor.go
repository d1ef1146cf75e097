package entity

import "github.com/google/uuid"

// Role is the caller's resolved role, verified upstream of this service.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleProfessional Role = "professional"
)

// Actor is the pre-validated identity context attached to every mutating
// call. Identity verification happens outside this service; the core trusts
// these fields and only checks Role on admin-only operations.
type Actor struct {
	ProfessionalID uuid.UUID `json:"professional_id"`
	DisplayName    string    `json:"display_name"`
	Role           Role      `json:"role"`
}

// IsAdmin reports whether the actor may perform administrative operations.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
