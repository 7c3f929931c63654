package model

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID          uuid.UUID
	UserType    string
	Description string
	Permissions PermissionMap
	CreatedAt   time.Time
}

func (r *Role) Allows(permission string) bool {
	if r == nil {
		return false
	}
	return r.Permissions[permission]
}

type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	Mobile    *string
	UserType  *uuid.UUID
	CreatedAt time.Time
}

// Principal is the authenticated identity attached to a request by the auth
// middleware.
type Principal struct {
	UserID uuid.UUID
}
