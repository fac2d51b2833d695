package models

// AdminUsername is the single privileged account, provisioned at startup.
// The role is derived from the identity rather than stored on the row, so
// registration under this name must be rejected elsewhere to keep the
// derivation sound.
const AdminUsername = "admin"

// IsAdmin reports whether the user holds the administrator role.
func (u User) IsAdmin() bool {
	return u.Username == AdminUsername
}
