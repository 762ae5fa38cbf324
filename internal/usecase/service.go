package usecase

import (
	"crossfit-api/internal/data/repository"
	"crossfit-api/internal/notifier"
	"crossfit-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth AuthService
	User UserService
}

func NewService(repo *repository.Repository, config *utils.Config, notify notifier.Notifier, log *zap.Logger) *Service {
	auth := NewAuthService(repo, config, notify, log)

	return &Service{
		Auth: auth,
		User: NewUserService(repo, notify, log),
	}
}
