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

const (
	SessionTTL = time.Hour
	TokenTTL   = time.Hour
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string, userID uuid.UUID) error
	ValidateSession(ctx context.Context, authHeader string) (*entity.User, string, error)
	IssueToken(ctx context.Context, kind entity.TokenKind, email string) (*entity.Token, error)
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error
	EditProfile(ctx context.Context, userID uuid.UUID, token string, req *request.EditProfileRequest) (*response.EditProfileResponse, error)
}

type authService struct {
	repo   *repository.Repository
	signer *SessionSigner
	notify notifier.Notifier
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	notify notifier.Notifier,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		signer: NewSessionSigner(config.JWT.Secret),
		notify: notify,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.now()
	user := &entity.User{
		Base:         entity.NewBase(now),
		Email:        email,
		PasswordHash: &hashed,
		Name:         req.Name,
		Role:         entity.RoleUser,
		Status:       true,
	}

	var token *entity.Token
	err = s.repo.Tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}
		token, err = issueToken(ctx, r.Tokens(), entity.TokenKindVerification, email, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", uniqueViolation(err))
	}

	s.sendLink(ctx, token)
	s.log.Info("User registered", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	email := utils.NormalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	// no record, no email or no password all look the same to the caller
	if user == nil || user.Email == "" || !user.HasPassword() {
		return nil, ErrAccountNotFound
	}

	if !user.Status {
		s.log.Warn("Disabled account tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountDisabled
	}

	if !user.IsVerified() {
		if err := s.issueAndSend(ctx, entity.TokenKindVerification, user.Email); err != nil {
			return nil, err
		}
		s.log.Info("Verification re-sent on login", zap.String("user_id", user.ID.String()))
		return &response.AuthResponse{ConfirmationSent: true}, nil
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	session, err := s.repo.Session.FindActiveByUser(ctx, user.ID, now)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if session == nil {
		session, err = s.createSession(ctx, user.ID, now)
		if err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	} else {
		s.log.Info("User logged in, session reused", zap.String("user_id", user.ID.String()))
	}

	return response.AuthToResponse(user, session), nil
}

func (s *authService) Logout(ctx context.Context, token string, userID uuid.UUID) error {
	if err := s.repo.Session.Delete(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out", zap.String("user_id", userID.String()))
	return nil
}

// ValidateSession resolves an Authorization header to its user and raw token.
// A deactivated account is refused even while its session is live. It never mutates state.
func (s *authService) ValidateSession(ctx context.Context, authHeader string) (*entity.User, string, error) {
	token, err := ParseBearer(authHeader)
	if err != nil {
		return nil, "", err
	}

	tokenUserID, err := s.signer.Verify(token)
	if err != nil {
		return nil, "", err
	}

	session, err := s.repo.Session.FindByToken(ctx, token)
	if err != nil {
		return nil, "", fmt.Errorf("validate session: %w", err)
	}
	if session == nil {
		return nil, "", ErrSessionNotFound
	}
	if session.UserID != tokenUserID {
		return nil, "", ErrInvalidToken
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("validate session: %w", err)
	}
	if user == nil {
		s.log.Warn("Session references a missing user", zap.String("user_id", session.UserID.String()))
		return nil, "", ErrUserNotFound
	}

	if !session.ActiveAt(s.now()) {
		return nil, "", ErrSessionExpired
	}
	if !user.Status {
		return nil, "", ErrAccountDisabled
	}

	return user, token, nil
}

func (s *authService) IssueToken(ctx context.Context, kind entity.TokenKind, email string) (*entity.Token, error) {
	var token *entity.Token
	err := s.repo.Tx.WithinTx(ctx, func(r repository.TxRepos) error {
		var err error
		token, err = issueToken(ctx, r.Tokens(), kind, email, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("issue %s token: %w", kind, err)
	}
	return token, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.consumeToken(ctx, entity.TokenKindVerification, token, func(user *entity.User, now time.Time) error {
		user.EmailVerified = &now
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	if user == nil {
		return ErrAccountNotFound
	}

	return s.issueAndSend(ctx, entity.TokenKindPasswordReset, user.Email)
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrValidation
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("reset password: %w", err)
	}

	user, err := s.consumeToken(ctx, entity.TokenKindPasswordReset, token, func(user *entity.User, _ time.Time) error {
		user.PasswordHash = &hashed
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req *request.ChangePasswordRequest) error {
	// re-read so the comparison never runs against a stale hash
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return ErrIncorrectPassword
	}
	if req.Password == req.NewPassword {
		return ErrSamePassword
	}

	hashed, err := hashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("change password: %w", err)
	}

	user.PasswordHash = &hashed
	user.UpdatedAt = s.now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// EditProfile applies the present fields. Moving to a new email clears the
// verification, mails a fresh token and revokes the calling session.
func (s *authService) EditProfile(
	ctx context.Context,
	userID uuid.UUID,
	token string,
	req *request.EditProfileRequest,
) (*response.EditProfileResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("edit profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	emailChanged := false
	if req.Email != nil {
		email := utils.NormalizeEmail(*req.Email)
		if email != user.Email {
			existing, err := s.repo.User.FindByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("edit profile: %w", err)
			}
			if existing != nil {
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
	if req.Image != nil {
		user.Image = req.Image
	}
	user.UpdatedAt = s.now()

	var issued *entity.Token
	err = s.repo.Tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Update(ctx, user); err != nil {
			return err
		}
		if !emailChanged {
			return nil
		}
		issued, err = issueToken(ctx, r.Tokens(), entity.TokenKindVerification, user.Email, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("edit profile: %w", uniqueViolation(err))
	}

	if emailChanged {
		s.sendLink(ctx, issued)

		if err := s.repo.Session.Delete(ctx, token); err != nil && !errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, fmt.Errorf("edit profile: revoke session: %w", err)
		}
		s.log.Info("Email changed, session revoked", zap.String("user_id", user.ID.String()))
	}

	return &response.EditProfileResponse{
		User:           response.UserToResponse(user),
		ReauthRequired: emailChanged,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, now time.Time) (*entity.Session, error) {
	expiresAt := now.Add(SessionTTL)

	signed, err := s.signer.Sign(userID, now, expiresAt)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		BaseSimple:   entity.NewBaseSimple(now),
		UserID:       userID,
		SessionToken: signed,
		ExpiresAt:    expiresAt,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// issueToken replaces any live token of kind for email; callers run it inside a transaction
func issueToken(ctx context.Context, tokens repository.TokenRepository, kind entity.TokenKind, email string, now time.Time) (*entity.Token, error) {
	if err := tokens.DeleteByEmail(ctx, kind, email); err != nil {
		return nil, err
	}

	token := &entity.Token{
		BaseSimple: entity.NewBaseSimple(now),
		Kind:       kind,
		Email:      email,
		Token:      utils.GenerateOpaqueToken(),
		ExpiresAt:  now.Add(TokenTTL),
	}

	if err := tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// hashPassword reports an over-long password as a validation error
func hashPassword(password string) (string, error) {
	hashed, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return hashed, err
}

// uniqueViolation turns a duplicate-key insert or update into the matching domain error
func uniqueViolation(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailInUse
	case errors.Is(err, repository.ErrDuplicateIdentification):
		return ErrIdentificationInUse
	default:
		return err
	}
}

func (s *authService) issueAndSend(ctx context.Context, kind entity.TokenKind, email string) error {
	token, err := s.IssueToken(ctx, kind, email)
	if err != nil {
		return err
	}
	s.sendLink(ctx, token)
	return nil
}

// sendLink is best-effort; a delivery failure never fails the calling flow
func (s *authService) sendLink(ctx context.Context, token *entity.Token) {
	if err := s.notify.SendLink(ctx, token.Kind, token.Email, token.Token); err != nil {
		s.log.Error("Failed to send link",
			zap.Error(err),
			zap.String("email", token.Email),
			zap.String("kind", string(token.Kind)),
		)
	}
}

// consumeToken takes the token and applies mutate to its user in one transaction.
// Any failure rolls back, leaving the token in place.
func (s *authService) consumeToken(
	ctx context.Context,
	kind entity.TokenKind,
	value string,
	mutate func(user *entity.User, now time.Time) error,
) (*entity.User, error) {
	var user *entity.User

	err := s.repo.Tx.WithinTx(ctx, func(r repository.TxRepos) error {
		token, err := r.Tokens().TakeByValue(ctx, kind, value)
		if err != nil {
			return err
		}
		if token == nil {
			return ErrTokenNotFound
		}

		now := s.now()
		if !token.ActiveAt(now) {
			return ErrTokenExpired
		}

		user, err = r.Users().FindByEmail(ctx, token.Email)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrAccountNotFound
		}

		if err := mutate(user, now); err != nil {
			return err
		}
		user.Email = token.Email
		user.UpdatedAt = now

		return r.Users().Update(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("consume %s token: %w", kind, err)
	}

	return user, nil
}
