package domain

import "time"

// PermissionLevel is an ordinal access level. Anything at or above
// PermissionTutor may act on tickets.
type PermissionLevel int

const (
	PermissionStudent PermissionLevel = 0
	PermissionTutor   PermissionLevel = 1
	PermissionAdmin   PermissionLevel = 2
)

// User is the identity of a requester or tutor.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Permission   PermissionLevel
	CreatedAt    time.Time
}

// IsTutor reports whether the user may perform tutor actions.
func (u *User) IsTutor() bool {
	return u != nil && u.Permission >= PermissionTutor
}
