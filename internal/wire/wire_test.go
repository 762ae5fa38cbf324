package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crossfit-api/internal/adaptor"
	"crossfit-api/internal/data/entity"
	"crossfit-api/internal/dto/request"
	"crossfit-api/internal/dto/response"
	"crossfit-api/internal/usecase"
	"crossfit-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubAuth resolves fixed bearer tokens to users; other methods are not routed in these tests
type stubAuth struct {
	usecase.AuthService
	sessions map[string]*entity.User
}

func (s *stubAuth) ValidateSession(_ context.Context, header string) (*entity.User, string, error) {
	token, err := usecase.ParseBearer(header)
	if err != nil {
		return nil, "", err
	}
	user, ok := s.sessions[token]
	if !ok {
		return nil, "", usecase.ErrSessionNotFound
	}
	return user, token, nil
}

type stubUsers struct {
	usecase.UserService
}

func (stubUsers) GetAllUsers(_ context.Context, _ uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	return response.NewPaginatedResponse([]response.UserResponse{}, req.Page, req.PerPage, 0), nil
}

func (stubUsers) GetProfile(_ context.Context, id uuid.UUID) (*response.UserResponse, error) {
	return &response.UserResponse{ID: id.String()}, nil
}

func (stubUsers) UpdateUser(_ context.Context, id string, _ *request.UpdateUserRequest) (*response.UserResponse, error) {
	return &response.UserResponse{ID: id}, nil
}

func newTestRouter() http.Handler {
	auth := &stubAuth{sessions: map[string]*entity.User{
		"admin-token":    {Base: entity.Base{ID: uuid.New()}, Role: entity.RoleAdmin},
		"customer-token": {Base: entity.Base{ID: uuid.New()}, Role: entity.RoleCustomer},
	}}
	service := &usecase.Service{Auth: auth, User: stubUsers{}}
	handler := adaptor.NewHandler(service, zap.NewNop())

	return setupRouter(handler, service, &utils.Config{}, zap.NewNop())
}

func TestRouter_AccessControl(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name     string
		method   string
		path     string
		header   string
		body     string
		wantCode int
	}{
		{name: "health is public", method: http.MethodGet, path: "/health", wantCode: http.StatusOK},
		{name: "profile needs a session", method: http.MethodGet, path: "/api/view_profile", wantCode: http.StatusUnauthorized},
		{name: "profile with session", method: http.MethodGet, path: "/api/view_profile", header: "Bearer customer-token", wantCode: http.StatusOK},
		{name: "unknown session", method: http.MethodGet, path: "/api/check", header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "check with session", method: http.MethodGet, path: "/api/check", header: "Bearer customer-token", wantCode: http.StatusOK},
		{name: "users without session", method: http.MethodGet, path: "/api/users", wantCode: http.StatusUnauthorized},
		{name: "users as customer", method: http.MethodGet, path: "/api/users", header: "Bearer customer-token", wantCode: http.StatusForbidden},
		{name: "users as admin", method: http.MethodGet, path: "/api/users", header: "Bearer admin-token", wantCode: http.StatusOK},
		{name: "toggle as customer", method: http.MethodPatch, path: "/api/users/" + uuid.NewString() + "/status", header: "Bearer customer-token", wantCode: http.StatusForbidden},
		{name: "update as customer", method: http.MethodPut, path: "/api/users/" + uuid.NewString(), header: "Bearer customer-token", body: `{"name":"X"}`, wantCode: http.StatusForbidden},
		{name: "update as admin", method: http.MethodPut, path: "/api/users/" + uuid.NewString(), header: "Bearer admin-token", body: `{"name":"X"}`, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
