package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// TeacherAccount is stored at /teachers/{name}. Password holds a bcrypt hash.
type TeacherAccount struct {
	Name      string    `json:"name,omitempty"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// TeacherInfo is what is shown about a teacher account; it never carries the
// password hash.
type TeacherInfo struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// AuthToken is returned by every login.
type AuthToken struct {
	Token     string    `json:"token"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
