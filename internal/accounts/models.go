package accounts

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Passwords are stored and compared in plain text and travel with the
// user record, including into the session store.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Fixed back-office credential pair; the admin identity lives outside the
// users table.
const (
	AdminEmail    = "admin@bn.com"
	AdminPassword = "admin123"
)

func IsBackdoor(email, password string) bool {
	return email == AdminEmail && password == AdminPassword
}

func AdminIdentity() User {
	return User{ID: "admin", Name: "System Admin", Email: AdminEmail, Role: RoleAdmin}
}
