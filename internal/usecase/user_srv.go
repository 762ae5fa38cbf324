package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crossfit-api/internal/data/entity"
	"crossfit-api/internal/data/repository"
	"crossfit-api/internal/dto/request"
	"crossfit-api/internal/dto/response"
	"crossfit-api/internal/notifier"
	"crossfit-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinimumAge is the youngest a member can be when an admin creates the account
const MinimumAge = 15

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, requesterID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUser(ctx context.Context, id string) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	ToggleStatus(ctx context.Context, id string) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	sessions repository.SessionRepository
	tx       repository.TransactionManager
	notify   notifier.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewUserService(
	repo *repository.Repository,
	notify notifier.Notifier,
	log *zap.Logger,
) UserService {
	return &userService{
		userRepo: repo.User,
		sessions: repo.Session,
		tx:       repo.Tx,
		notify:   notify,
		log:      log.With(zap.String("service", "user")),
		now:      time.Now,
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// GetAllUsers lists every account except the requester's own
func (us *userService) GetAllUsers(
	ctx context.Context,
	requesterID uuid.UUID,
	req *request.PaginatedRequest,
) (*response.PaginatedResponse[response.UserResponse], error) {
	req.Normalize()

	users, err := us.userRepo.FindAll(ctx, requesterID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (us *userService) GetUser(ctx context.Context, id string) (*response.UserResponse, error) {
	userID, err := utils.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	now := us.now()
	if utils.AgeAt(req.BornDate, now) < MinimumAge {
		return nil, fmt.Errorf("%w: user must be at least %d years old", ErrValidation, MinimumAge)
	}

	existing, err := us.userRepo.FindByIdentification(ctx, req.Identification)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if existing != nil {
		return nil, ErrIdentificationInUse
	}

	email := utils.NormalizeEmail(req.Email)
	existing, err = us.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	var gender *entity.Gender
	if req.Gender != nil {
		g := entity.Gender(*req.Gender)
		gender = &g
	}
	bornDate := req.BornDate
	identification := req.Identification
	lastname := req.Lastname

	user := &entity.User{
		Base:           entity.NewBase(now),
		Identification: &identification,
		Email:          email,
		PasswordHash:   &hashed,
		Name:           req.Name,
		Lastname:       &lastname,
		Phone:          req.Phone,
		EmergencyPhone: req.EmergencyPhone,
		Direction:      req.Direction,
		Gender:         gender,
		Nationality:    req.Nationality,
		BornDate:       &bornDate,
		Role:           role,
		Status:         true,
	}

	var token *entity.Token
	err = us.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}
		token, err = issueToken(ctx, r.Tokens(), entity.TokenKindVerification, email, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", uniqueViolation(err))
	}
	us.sendLink(ctx, token)

	us.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateUser applies an admin's edit to another account. A new email clears the
// verification, mails a fresh token and signs the account out everywhere.
func (us *userService) UpdateUser(ctx context.Context, id string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	userID, err := utils.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	now := us.now()

	if req.Role != nil {
		role, ok := entity.ParseRole(*req.Role)
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
		}
		user.Role = role
	}

	if req.BornDate != nil {
		if utils.AgeAt(*req.BornDate, now) < MinimumAge {
			return nil, fmt.Errorf("%w: user must be at least %d years old", ErrValidation, MinimumAge)
		}
		bornDate := *req.BornDate
		user.BornDate = &bornDate
	}

	if req.Identification != nil && (user.Identification == nil || *req.Identification != *user.Identification) {
		existing, err := us.userRepo.FindByIdentification(ctx, *req.Identification)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrIdentificationInUse
		}
		identification := *req.Identification
		user.Identification = &identification
	}

	emailChanged := false
	if req.Email != nil {
		email := utils.NormalizeEmail(*req.Email)
		if email != user.Email {
			existing, err := us.userRepo.FindByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}
			if existing != nil && existing.ID != user.ID {
				return nil, ErrEmailInUse
			}
			user.Email = email
			user.EmailVerified = nil
			emailChanged = true
		}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Lastname != nil {
		user.Lastname = req.Lastname
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.EmergencyPhone != nil {
		user.EmergencyPhone = req.EmergencyPhone
	}
	if req.Direction != nil {
		user.Direction = req.Direction
	}
	if req.Gender != nil {
		g := entity.Gender(*req.Gender)
		user.Gender = &g
	}
	if req.Nationality != nil {
		user.Nationality = req.Nationality
	}
	if req.Image != nil {
		user.Image = req.Image
	}
	user.UpdatedAt = now

	var token *entity.Token
	err = us.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Update(ctx, user); err != nil {
			return err
		}
		if !emailChanged {
			return nil
		}
		token, err = issueToken(ctx, r.Tokens(), entity.TokenKindVerification, user.Email, now)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", uniqueViolation(err))
	}

	if emailChanged {
		us.sendLink(ctx, token)
		if err := us.revokeSessions(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	us.log.Info("User updated",
		zap.String("user_id", user.ID.String()),
		zap.Bool("email_changed", emailChanged),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ToggleStatus flips Active and Deactivated; accounts are never deleted.
// Deactivating signs the account out of every session.
func (us *userService) ToggleStatus(ctx context.Context, id string) (*response.UserResponse, error) {
	userID, err := utils.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("toggle status: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	user.Status = !user.Status
	if err := us.userRepo.SetStatus(ctx, user.ID, user.Status); err != nil {
		return nil, fmt.Errorf("toggle status: %w", err)
	}
	if !user.Status {
		if err := us.revokeSessions(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("toggle status: %w", err)
		}
	}

	us.log.Info("User status changed",
		zap.String("user_id", user.ID.String()),
		zap.Bool("status", user.Status),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) revokeSessions(ctx context.Context, userID uuid.UUID) error {
	n, err := us.sessions.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	us.log.Info("Sessions revoked",
		zap.String("user_id", userID.String()),
		zap.Int64("count", n),
	)
	return nil
}

func (us *userService) sendLink(ctx context.Context, token *entity.Token) {
	if err := us.notify.SendLink(ctx, token.Kind, token.Email, token.Token); err != nil {
		us.log.Error("Failed to send verification link",
			zap.Error(err),
			zap.String("email", token.Email),
		)
	}
}
