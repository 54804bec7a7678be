package users

import "strings"

// UserType is the marketplace role an account was registered with.
type UserType string

const (
	UserTypeClient     UserType = "client"
	UserTypeFreelancer UserType = "freelancer"
	UserTypeAdmin      UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeClient, UserTypeFreelancer, UserTypeAdmin:
		return true
	}
	return false
}

// User is the normalised identity kept in the session, whatever shape the
// backend returned it in.
type User struct {
	ID              int64    `json:"id"`                // Backend user id
	Email           string   `json:"email"`             // Login email
	Username        string   `json:"username"`          // Unique username
	UserType        UserType `json:"user_type"`         // Role, decides the dashboard
	FullName        string   `json:"full_name"`         // "first last" as sent by the backend
	IsVerified      bool     `json:"is_verified"`       // Email verified (always true for Google sign in)
	ProfilePhotoURL string   `json:"profile_photo_url"` // Absolute media URL, empty when no picture
}

// FullName joins first and last name the way the portal has always shown it.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func (u *User) IsAdmin() bool {
	return u != nil && u.UserType == UserTypeAdmin
}

func (u *User) IsClient() bool {
	return u != nil && u.UserType == UserTypeClient
}

func (u *User) IsFreelancer() bool {
	return u != nil && u.UserType == UserTypeFreelancer
}

// Clone returns a copy safe to hand out of a lock.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
