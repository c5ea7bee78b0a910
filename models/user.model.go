package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role marks a user's privilege level.
type Role string

// RoleAdmin grants access to menu editing, user administration and stats.
const RoleAdmin Role = "Admin"

// IsAdmin reports whether the role carries admin privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents a user in the system. Users are created on first
// login; email uniqueness is enforced at the application level.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  Role               `bson:"role,omitempty" json:"role,omitempty"`
}
