package models

import "fmt"

// Роли, которые auth-сервис записывает в токен.
const (
	RoleUser     = "ROLE_USER"
	RoleTrainer  = "ROLE_TRAINER"
	RoleManager  = "ROLE_MANAGER"
	RoleAdmin    = "ROLE_ADMIN"
	RoleEmployee = "ROLE_EMPLOYEE"
)

// AllRoles возвращает все известные роли.
func AllRoles() []string {
	return []string{
		RoleUser,
		RoleTrainer,
		RoleManager,
		RoleAdmin,
		RoleEmployee,
	}
}

// AllRolesMap возвращает множество ролей для быстрой проверки.
func AllRolesMap() map[string]struct{} {
	roles := AllRoles()
	roleMap := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleMap[role] = struct{}{}
	}
	return roleMap
}

// HasRole проверяет, есть ли у пользователя указанная роль.
func HasRole(userRoles []string, targetRole string) bool {
	for _, role := range userRoles {
		if role == targetRole {
			return true
		}
	}
	return false
}

// HasAnyRole возвращает true, если у пользователя есть хотя бы одна из ролей.
// Пустой список требуемых ролей не ограничивает доступ.
func HasAnyRole(userRoles []string, required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if HasRole(userRoles, r) {
			return true
		}
	}
	return false
}

// ValidateRoles проверяет, что все роли известны, и возвращает их без дубликатов.
// ROLE_USER добавляется всегда.
func ValidateRoles(roles []string) ([]string, error) {
	known := AllRolesMap()
	seen := make(map[string]struct{}, len(roles)+1)
	result := make([]string, 0, len(roles)+1)

	result = append(result, RoleUser)
	seen[RoleUser] = struct{}{}

	for _, role := range roles {
		if _, ok := known[role]; !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		result = append(result, role)
	}
	return result, nil
}

// IsStaff - сотрудник, менеджер или администратор.
func IsStaff(userRoles []string) bool {
	return HasAnyRole(userRoles, RoleEmployee, RoleManager, RoleAdmin)
}
