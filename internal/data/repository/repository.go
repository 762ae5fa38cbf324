package repository

import (
	"errors"
	"strings"

	"crossfit-api/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrNoRowsAffected marks an update or delete whose WHERE clause matched nothing
	ErrNoRowsAffected = errors.New("no rows affected")

	ErrDuplicateEmail          = errors.New("email already exists")
	ErrDuplicateIdentification = errors.New("identification already exists")
)

const uniqueViolationCode = "23505"

// duplicateKey maps a unique violation on the users table to its sentinel, or nil
func duplicateKey(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "identification") {
		return ErrDuplicateIdentification
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return ErrDuplicateEmail
	}
	return nil
}

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Token   TokenRepository
	Tx      TransactionManager
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Token:   NewTokenRepository(db, log),
		Tx:      NewTransactionManager(db, log),
	}
}
