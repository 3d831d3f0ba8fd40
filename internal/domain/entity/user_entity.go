package entity

import (
	"time"
)

// Role is the authorization role stored on a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// PhoneNumber is the normalized phone number derived at registration.
// The raw input is never stored.
type PhoneNumber struct {
	CountryCode         string
	ISOCode             string
	InternationalNumber string
}

// AccountConfirmation holds the token/code pair a user must present while
// Status is false. Timestamp is set when the account is confirmed.
type AccountConfirmation struct {
	Status    bool
	Token     string
	Code      string
	Timestamp *time.Time
}

// PasswordReset is reserved for the password reset flow and stays empty here.
type PasswordReset struct {
	Token       *string
	Expiry      *time.Time
	LastResetAt *time.Time
}

// User is the aggregate root for the account domain
// Passwords are stored as bcrypt hashes in Password field
type User struct {
	ID                  string
	Name                string
	EmailAddress        string
	Password            string
	PhoneNumber         PhoneNumber
	Role                Role
	Timezone            string
	Consent             bool
	AccountConfirmation AccountConfirmation
	PasswordReset       PasswordReset
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsConfirmed reports whether the account left the unconfirmed state.
func (u *User) IsConfirmed() bool {
	return u.AccountConfirmation.Status
}

// Confirm moves the account to the confirmed state. Confirmed is terminal,
// so it returns false without touching the record when already confirmed.
func (u *User) Confirm(at time.Time) bool {
	if u.AccountConfirmation.Status {
		return false
	}
	ts := at.UTC()
	u.AccountConfirmation.Status = true
	u.AccountConfirmation.Timestamp = &ts
	return true
}
