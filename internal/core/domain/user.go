package domain

const (
	RoleAdmin       = "admin"
	RoleShareholder = "shareholder"
)

// User models an authenticated actor in the system. The password is only ever
// stored as a bcrypt hash and is never serialized.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
