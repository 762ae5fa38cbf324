package repository

import (
	"context"
	"errors"
	"fmt"

	"crossfit-api/internal/data/entity"
	"crossfit-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByIdentification(ctx context.Context, identification string) (*entity.User, error)
	FindAll(ctx context.Context, excludeID uuid.UUID, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context, excludeID uuid.UUID) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	SetStatus(ctx context.Context, id uuid.UUID, status bool) error
}

type userRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewUserRepository(db database.DBTX, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, identification, email, password, name, lastname, phone,
		       emergency_phone, direction, gender, nationality, born_date, image,
		       role, email_verified, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Identification,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Lastname,
		&user.Phone,
		&user.EmergencyPhone,
		&user.Direction,
		&user.Gender,
		&user.Nationality,
		&user.BornDate,
		&user.Image,
		&user.Role,
		&user.EmailVerified,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, identification, email, password, name, lastname, phone,
		                   emergency_phone, direction, gender, nationality, born_date, image,
		                   role, email_verified, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Identification,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Lastname,
		user.Phone,
		user.EmergencyPhone,
		user.Direction,
		user.Gender,
		user.Nationality,
		user.BornDate,
		user.Image,
		user.Role,
		user.EmailVerified,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if dup := duplicateKey(err); dup != nil {
		return fmt.Errorf("create user %s: %w", user.Email, dup)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) FindByIdentification(ctx context.Context, identification string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE identification = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, identification))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by identification", zap.Error(err))
		return nil, fmt.Errorf("find user by identification: %w", err)
	}

	return user, nil
}

// FindAll retrieves a page of users, leaving out excludeID (the caller)
func (ur *userRepository) FindAll(ctx context.Context, excludeID uuid.UUID, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id <> $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := ur.db.Query(ctx, query, excludeID, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context, excludeID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE id <> $1`

	var count int64
	if err := ur.db.QueryRow(ctx, query, excludeID).Scan(&count); err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET identification = $2, email = $3, password = $4, name = $5, lastname = $6,
		    phone = $7, emergency_phone = $8, direction = $9, gender = $10,
		    nationality = $11, born_date = $12, image = $13, role = $14,
		    email_verified = $15, status = $16, updated_at = $17
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Identification,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Lastname,
		user.Phone,
		user.EmergencyPhone,
		user.Direction,
		user.Gender,
		user.Nationality,
		user.BornDate,
		user.Image,
		user.Role,
		user.EmailVerified,
		user.Status,
		user.UpdatedAt,
	)
	if dup := duplicateKey(err); dup != nil {
		return fmt.Errorf("update user %s: %w", user.ID.String(), dup)
	}
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID.String(), ErrNoRowsAffected)
	}

	return nil
}

// SetStatus flips the soft activation flag; rows are never deleted
func (ur *userRepository) SetStatus(ctx context.Context, id uuid.UUID, status bool) error {
	query := `UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, status)
	if err != nil {
		ur.log.Error("Failed to set user status",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.Bool("status", status),
		)
		return fmt.Errorf("set status of user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("set status of user %s: %w", id.String(), ErrNoRowsAffected)
	}

	return nil
}
