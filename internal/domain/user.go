package domain

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole accepts the roles a caller may register with. Admins are only seeded.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleBuyer, RoleSeller:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID        string `db:"id" json:"_id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	Photo     string `db:"photo" json:"photo"`
	Role      Role   `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
