package entity

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleTrainer  Role = "TRAINER"
	RoleCustomer Role = "CUSTOMER"
	RoleUser     Role = "USER"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleCustomer, RoleUser:
		return true
	}
	return false
}

// ParseRole returns the role matching s, or false for anything outside the closed set
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// User is never physically deleted; Status=false is a deactivated account.
type User struct {
	Base
	Identification *string    `db:"identification"`
	Email          string     `db:"email"`
	PasswordHash   *string    `db:"password"`
	Name           string     `db:"name"`
	Lastname       *string    `db:"lastname"`
	Phone          *string    `db:"phone"`
	EmergencyPhone *string    `db:"emergency_phone"`
	Direction      *string    `db:"direction"`
	Gender         *Gender    `db:"gender"`
	Nationality    *string    `db:"nationality"`
	BornDate       *time.Time `db:"born_date"`
	Image          *string    `db:"image"`
	Role           Role       `db:"role"`
	EmailVerified  *time.Time `db:"email_verified"`
	Status         bool       `db:"status"`
}

func (u *User) IsVerified() bool {
	return u.EmailVerified != nil
}

// HasPassword is false for accounts that were provisioned without a password
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
