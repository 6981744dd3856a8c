package domain

// Role роль аутентифицированного пользователя
type Role string

const (
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

// Principal аутентифицированный пользователь, выполняющий запрос
type Principal struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for administrators
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
