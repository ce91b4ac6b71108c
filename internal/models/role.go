package models

// Role names used by the authorization layer.
const (
	RoleAdmin = "admin"
)

// Role is an authorization role. Users map to roles through the
// user_roles join table; privileged actions check membership with a join
// query instead of a flag on the user row.
type Role struct {
	ID   PublicID `gorm:"primaryKey" json:"id"`
	Name string   `gorm:"uniqueIndex;not null" json:"name"`

	Users []User `gorm:"many2many:user_roles" json:"-"`
}
