package models

import (
	"time"
)

// User represents a customer or staff account
type User struct {
	ID           string     `json:"id" db:"id"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PhoneNumber  string     `json:"phone_number" db:"phone_number"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Gender       string     `json:"gender,omitempty" db:"gender"`
	Address      string     `json:"address,omitempty" db:"address"`
	Country      string     `json:"country,omitempty" db:"country"`
	Role         string     `json:"role" db:"role"`
	ZoomUsername string     `json:"zoom_username,omitempty" db:"zoom_username"`
	SkypeUsername string    `json:"skype_username,omitempty" db:"skype_username"`
	Deleted      bool       `json:"-" db:"deleted"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	"superadmin":        true,
	"admin":             true,
	"software_developer": true,
	"content_creator":   true,
	"digital_marketer":  true,
	"customer":          true,
}

// SignupRequest is the payload for user creation
type SignupRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	PhoneNumber   string `json:"phone_number"`
	Gender        string `json:"gender"`
	Address       string `json:"address"`
	Country       string `json:"country"`
	Role          string `json:"role"`
	ZoomUsername  string `json:"zoom_username"`
	SkypeUsername string `json:"skype_username"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and basic identity
type LoginResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// UserUpdate is a partial update; nil fields are left untouched
type UserUpdate struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Username      *string `json:"username"`
	Email         *string `json:"email"`
	Password      *string `json:"password"`
	PhoneNumber   *string `json:"phone_number"`
	Gender        *string `json:"gender"`
	Address       *string `json:"address"`
	Country       *string `json:"country"`
	Role          *string `json:"role"`
	ZoomUsername  *string `json:"zoom_username"`
	SkypeUsername *string `json:"skype_username"`
}
