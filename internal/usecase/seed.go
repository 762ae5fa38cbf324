package usecase

import (
	"context"
	"fmt"
	"time"

	"crossfit-api/internal/data/entity"
	"crossfit-api/internal/data/repository"
	"crossfit-api/pkg/utils"

	"go.uber.org/zap"
)

const DefaultSeedPassword = "S3cureP@assword"

type seedUser struct {
	email string
	name  string
	role  entity.Role
}

var defaultSeedUsers = []seedUser{
	{email: "admin@admin.com", name: "Admin", role: entity.RoleAdmin},
	{email: "trainer@trainer.com", name: "Trainer", role: entity.RoleTrainer},
	{email: "customer@customer.com", name: "Customer", role: entity.RoleCustomer},
}

// SeedDefaultUsers creates one verified, active account per staff role.
// Accounts that already exist are left untouched.
func SeedDefaultUsers(ctx context.Context, users repository.UserRepository, password string, log *zap.Logger) (int, error) {
	if password == "" {
		password = DefaultSeedPassword
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("seed users: %w", err)
	}

	created := 0
	for _, su := range defaultSeedUsers {
		existing, err := users.FindByEmail(ctx, su.email)
		if err != nil {
			return created, fmt.Errorf("seed users: %w", err)
		}
		if existing != nil {
			continue
		}

		now := time.Now()
		hash := hashed
		user := &entity.User{
			Base:          entity.NewBase(now),
			Email:         su.email,
			PasswordHash:  &hash,
			Name:          su.name,
			Role:          su.role,
			EmailVerified: &now,
			Status:        true,
		}

		if err := users.Create(ctx, user); err != nil {
			return created, fmt.Errorf("seed users: %w", err)
		}
		created++
		log.Info("Seeded user", zap.String("email", su.email), zap.String("role", string(su.role)))
	}

	return created, nil
}
