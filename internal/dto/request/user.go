package request

import "time"

// CreateUserRequest is used by an admin to provision staff and customers
type CreateUserRequest struct {
	Identification string    `json:"identification" validate:"required,min=5,max=20"`
	Email          string    `json:"email" validate:"required,email,max=255"`
	Password       string    `json:"password" validate:"required,min=6,max=72"`
	Name           string    `json:"name" validate:"required,min=1,max=100"`
	Lastname       string    `json:"lastname" validate:"required,min=1,max=100"`
	Phone          *string   `json:"phone,omitempty" validate:"omitempty,min=7,max=15"`
	EmergencyPhone *string   `json:"emergency_phone,omitempty" validate:"omitempty,min=7,max=15"`
	Direction      *string   `json:"direction,omitempty" validate:"omitempty,max=255"`
	Gender         *string   `json:"gender,omitempty" validate:"omitempty,oneof=M F O"`
	Nationality    *string   `json:"nationality,omitempty" validate:"omitempty,max=50"`
	BornDate       time.Time `json:"born_date" validate:"minage=15"`
	Role           string    `json:"role" validate:"required,oneof=ADMIN TRAINER CUSTOMER USER"`
}

// UpdateUserRequest is an admin edit of another account; absent fields are left alone
type UpdateUserRequest struct {
	Identification *string    `json:"identification,omitempty" validate:"omitempty,min=5,max=20"`
	Email          *string    `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Name           *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Lastname       *string    `json:"lastname,omitempty" validate:"omitempty,min=1,max=100"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,min=7,max=15"`
	EmergencyPhone *string    `json:"emergency_phone,omitempty" validate:"omitempty,min=7,max=15"`
	Direction      *string    `json:"direction,omitempty" validate:"omitempty,max=255"`
	Gender         *string    `json:"gender,omitempty" validate:"omitempty,oneof=M F O"`
	Nationality    *string    `json:"nationality,omitempty" validate:"omitempty,max=50"`
	BornDate       *time.Time `json:"born_date,omitempty" validate:"omitempty,minage=15"`
	Role           *string    `json:"role,omitempty" validate:"omitempty,oneof=ADMIN TRAINER CUSTOMER USER"`
	Image          *string    `json:"image,omitempty" validate:"omitempty,url"`
}
