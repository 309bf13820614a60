package auth

// Роли сотрудников
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Permissions список разрешений
var Permissions = map[string][]string{
	RoleAdmin: {
		"gym:read",
		"gym:write",
		"users:write",
	},
	RoleStaff: {
		"gym:read",
		"gym:write",
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// CanPerformAction проверяет может ли пользователь выполнить действие
func CanPerformAction(claims *Claims, permission string) bool {
	return claims != nil && HasPermission(claims.Role, permission)
}
