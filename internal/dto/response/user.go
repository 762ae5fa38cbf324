package response

import (
	"time"

	"crossfit-api/internal/data/entity"
)

type UserResponse struct {
	ID             string         `json:"id"`
	Identification *string        `json:"identification,omitempty"`
	Email          string         `json:"email"`
	Name           string         `json:"name"`
	Lastname       *string        `json:"lastname,omitempty"`
	Phone          *string        `json:"phone,omitempty"`
	EmergencyPhone *string        `json:"emergency_phone,omitempty"`
	Direction      *string        `json:"direction,omitempty"`
	Gender         *entity.Gender `json:"gender,omitempty"`
	Nationality    *string        `json:"nationality,omitempty"`
	BornDate       *time.Time     `json:"born_date,omitempty"`
	Image          *string        `json:"image,omitempty"`
	Role           entity.Role    `json:"role"`
	EmailVerified  *time.Time     `json:"email_verified,omitempty"`
	Status         bool           `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Identification: user.Identification,
		Email:          user.Email,
		Name:           user.Name,
		Lastname:       user.Lastname,
		Phone:          user.Phone,
		EmergencyPhone: user.EmergencyPhone,
		Direction:      user.Direction,
		Gender:         user.Gender,
		Nationality:    user.Nationality,
		BornDate:       user.BornDate,
		Image:          user.Image,
		Role:           user.Role,
		EmailVerified:  user.EmailVerified,
		Status:         user.Status,
		CreatedAt:      user.CreatedAt,
	}
}
