// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists indicates that the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already registered")
	// ErrWrongPassword indicates that the given password is wrong.
	ErrWrongPassword = errors.New("incorrect password")
)

// User holds the registered user data.
type User struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	PhoneNumber    string    `json:"phone_number"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateUserParams is the input data for creating a user.
type CreateUserParams struct {
	FullName       string
	Email          string
	HashedPassword string
	PhoneNumber    string
}

// UserWithoutPassword holds user data safe to return to clients.
type UserWithoutPassword struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}
