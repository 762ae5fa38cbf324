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

type TokenRepository interface {
	Create(ctx context.Context, token *entity.Token) error
	FindByValue(ctx context.Context, value string) (*entity.Token, error)
	FindByEmail(ctx context.Context, kind entity.TokenKind, email string) (*entity.Token, error)
	DeleteByEmail(ctx context.Context, kind entity.TokenKind, email string) error
	Delete(ctx context.Context, id uuid.UUID) error
	TakeByValue(ctx context.Context, kind entity.TokenKind, value string) (*entity.Token, error)
}

type tokenRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewTokenRepository(db database.DBTX, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

func scanToken(row rowScanner) (*entity.Token, error) {
	var token entity.Token
	err := row.Scan(
		&token.ID,
		&token.Kind,
		&token.Email,
		&token.Token,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.Token) error {
	query := `
		INSERT INTO verification_tokens (id, kind, email, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.Kind,
		token.Email,
		token.Token,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create token",
			zap.Error(err),
			zap.String("email", token.Email),
			zap.String("kind", string(token.Kind)),
		)
		return fmt.Errorf("create %s token for %s: %w", token.Kind, token.Email, err)
	}

	return nil
}

func (r *tokenRepository) FindByValue(ctx context.Context, value string) (*entity.Token, error) {
	query := `
		SELECT id, kind, email, token, expires_at, created_at
		FROM verification_tokens
		WHERE token = $1
	`

	token, err := scanToken(r.db.QueryRow(ctx, query, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find token by value", zap.Error(err))
		return nil, fmt.Errorf("find token by value: %w", err)
	}

	return token, nil
}

func (r *tokenRepository) FindByEmail(ctx context.Context, kind entity.TokenKind, email string) (*entity.Token, error) {
	query := `
		SELECT id, kind, email, token, expires_at, created_at
		FROM verification_tokens
		WHERE kind = $1 AND email = $2
	`

	token, err := scanToken(r.db.QueryRow(ctx, query, kind, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find token by email",
			zap.Error(err),
			zap.String("email", email),
			zap.String("kind", string(kind)),
		)
		return nil, fmt.Errorf("find %s token for %s: %w", kind, email, err)
	}

	return token, nil
}

// DeleteByEmail drops any unconsumed token of kind for email; no match is not an error
func (r *tokenRepository) DeleteByEmail(ctx context.Context, kind entity.TokenKind, email string) error {
	query := `DELETE FROM verification_tokens WHERE kind = $1 AND email = $2`

	if _, err := r.db.Exec(ctx, query, kind, email); err != nil {
		r.log.Error("Failed to delete previous token",
			zap.Error(err),
			zap.String("email", email),
			zap.String("kind", string(kind)),
		)
		return fmt.Errorf("delete %s token for %s: %w", kind, email, err)
	}

	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM verification_tokens WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete token",
			zap.Error(err),
			zap.String("token_id", id.String()),
		)
		return fmt.Errorf("delete token %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete token %s: %w", id.String(), ErrNoRowsAffected)
	}

	return nil
}

// TakeByValue deletes the token and returns the removed row in one statement.
// Two concurrent callers cannot both receive the same row.
func (r *tokenRepository) TakeByValue(ctx context.Context, kind entity.TokenKind, value string) (*entity.Token, error) {
	query := `
		DELETE FROM verification_tokens
		WHERE kind = $1 AND token = $2
		RETURNING id, kind, email, token, expires_at, created_at
	`

	token, err := scanToken(r.db.QueryRow(ctx, query, kind, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to take token",
			zap.Error(err),
			zap.String("kind", string(kind)),
		)
		return nil, fmt.Errorf("take %s token: %w", kind, err)
	}

	return token, nil
}
