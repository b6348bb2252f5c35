package models

import "github.com/google/uuid"

// Actor - аутентифицированный пользователь, от имени которого выполняется операция.
type Actor struct {
	UserID uuid.UUID
	Roles  []string
}

func (a Actor) HasRole(role string) bool {
	return HasRole(a.Roles, role)
}

// IsStaff - см. models.IsStaff.
func (a Actor) IsStaff() bool {
	return IsStaff(a.Roles)
}
