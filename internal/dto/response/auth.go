package response

import (
	"time"

	"crossfit-api/internal/data/entity"
)

// UserPublic is the identity returned on login; never carries the password hash
type UserPublic struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  entity.Role `json:"role"`
	Image *string     `json:"image,omitempty"`
}

// AuthResponse is either a session or, for unverified accounts, a confirmation notice
type AuthResponse struct {
	Token            string      `json:"token,omitempty"`
	ExpiresAt        *time.Time  `json:"expires_at,omitempty"`
	User             *UserPublic `json:"user,omitempty"`
	ConfirmationSent bool        `json:"confirmation_sent"`
}

type EditProfileResponse struct {
	User           UserResponse `json:"user"`
	ReauthRequired bool         `json:"reauth_required"`
}

func UserToPublic(user *entity.User) *UserPublic {
	return &UserPublic{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		Image: user.Image,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) *AuthResponse {
	resp := &AuthResponse{User: UserToPublic(user)}
	if session != nil {
		expiresAt := session.ExpiresAt
		resp.Token = session.SessionToken
		resp.ExpiresAt = &expiresAt
	}
	return resp
}
