package repository

import (
	"context"

	"crossfit-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TxRepos exposes the repositories that take part in multi-statement writes
type TxRepos interface {
	Users() UserRepository
	Tokens() TokenRepository
}

// TransactionManager hides begin/commit/rollback from the usecase layer
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

type txRepos struct {
	users  UserRepository
	tokens TokenRepository
}

func (r *txRepos) Users() UserRepository   { return r.users }
func (r *txRepos) Tokens() TokenRepository { return r.tokens }

type transactionManager struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionManager(db database.PgxIface, log *zap.Logger) TransactionManager {
	return &transactionManager{db: db, log: log}
}

func (tm *transactionManager) WithinTx(ctx context.Context, fn func(r TxRepos) error) error {
	return database.WithTx(ctx, tm.db, func(tx pgx.Tx) error {
		// repositories rebuilt on the transaction handle
		return fn(&txRepos{
			users:  NewUserRepository(tx, tm.log),
			tokens: NewTokenRepository(tx, tm.log),
		})
	})
}
