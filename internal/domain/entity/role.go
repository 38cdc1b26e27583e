package entity

// Role is the name of an account role. The set is open: Admin and User are
// the roles the application ships with, but registration accepts any
// non-empty role name.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

func (r Role) String() string {
	return string(r)
}
