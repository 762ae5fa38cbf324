package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"crossfit-api/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var sessionColumns = []string{"id", "user_id", "session_token", "expires_at", "created_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return mock
}

func TestSessionRepository_FindByToken(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	id, userID := uuid.New(), uuid.New()
	expires := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	created := expires.Add(-time.Hour)

	mock.ExpectQuery("FROM sessions").
		WithArgs("tok").
		WillReturnRows(pgxmock.NewRows(sessionColumns).AddRow(id, userID, "tok", expires, created))

	session, err := repo.FindByToken(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, id, session.ID)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, expires, session.ExpiresAt)
}

func TestSessionRepository_FindByToken_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	mock.ExpectQuery("FROM sessions").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	session, err := repo.FindByToken(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionRepository_FindActiveByUser_QueryError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	userID := uuid.New()
	now := time.Now()
	mock.ExpectQuery("expires_at > \\$2").WithArgs(userID, now).WillReturnError(errors.New("connection reset"))

	session, err := repo.FindActiveByUser(context.Background(), userID, now)
	assert.Nil(t, session)
	assert.ErrorContains(t, err, "connection reset")
}

func TestSessionRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	session := &entity.Session{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:       uuid.New(),
		SessionToken: "tok",
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(session.ID, session.UserID, session.SessionToken, session.ExpiresAt, session.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), session))
}

func TestSessionRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	mock.ExpectExec("DELETE FROM sessions").WithArgs("tok").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	assert.NoError(t, repo.Delete(context.Background(), "tok"))

	mock.ExpectExec("DELETE FROM sessions").WithArgs("tok").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "tok"), ErrNoRowsAffected)
}

func TestSessionRepository_DeleteByUser(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	userID := uuid.New()
	mock.ExpectExec("DELETE FROM sessions WHERE user_id = \\$1").WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("DELETE FROM sessions WHERE user_id = \\$1").WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	n, err := repo.DeleteByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// nothing to revoke is not an error
	n, err = repo.DeleteByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	before := time.Now()
	mock.ExpectExec("expires_at <= \\$1").WithArgs(before).WillReturnResult(pgxmock.NewResult("DELETE", 7))

	n, err := repo.DeleteExpired(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
