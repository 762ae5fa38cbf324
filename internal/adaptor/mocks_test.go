package adaptor

import (
	"context"

	"crossfit-api/internal/data/entity"
	"crossfit-api/internal/dto/request"
	"crossfit-api/internal/dto/response"
	"crossfit-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

var _ usecase.AuthService = (*MockAuthService)(nil)

func (m *MockAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*response.UserResponse)
	return r, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*response.AuthResponse)
	return r, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string, userID uuid.UUID) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

func (m *MockAuthService) ValidateSession(ctx context.Context, authHeader string) (*entity.User, string, error) {
	args := m.Called(ctx, authHeader)
	u, _ := args.Get(0).(*entity.User)
	return u, args.String(1), args.Error(2)
}

func (m *MockAuthService) IssueToken(ctx context.Context, kind entity.TokenKind, email string) (*entity.Token, error) {
	args := m.Called(ctx, kind, email)
	t, _ := args.Get(0).(*entity.Token)
	return t, args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockAuthService) EditProfile(ctx context.Context, userID uuid.UUID, token string, req *request.EditProfileRequest) (*response.EditProfileResponse, error) {
	args := m.Called(ctx, userID, token, req)
	r, _ := args.Get(0).(*response.EditProfileResponse)
	return r, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

var _ usecase.UserService = (*MockUserService)(nil)

func (m *MockUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*response.UserResponse)
	return r, args.Error(1)
}

func (m *MockUserService) GetAllUsers(ctx context.Context, requesterID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	args := m.Called(ctx, requesterID, req)
	r, _ := args.Get(0).(*response.PaginatedResponse[response.UserResponse])
	return r, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*response.UserResponse, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*response.UserResponse)
	return r, args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*response.UserResponse)
	return r, args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	args := m.Called(ctx, id, req)
	r, _ := args.Get(0).(*response.UserResponse)
	return r, args.Error(1)
}

func (m *MockUserService) ToggleStatus(ctx context.Context, id string) (*response.UserResponse, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*response.UserResponse)
	return r, args.Error(1)
}
