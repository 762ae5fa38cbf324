package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"crossfit-api/internal/data/entity"
	"crossfit-api/internal/data/repository"
	"crossfit-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret   = "test-secret"
	testPassword = "S3cureP@assword"
)

var (
	hashOnce   sync.Once
	cachedHash string
)

// testPasswordHash hashes testPassword once; bcrypt at cost 12 is slow
func testPasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := utils.HashPassword(testPassword)
		require.NoError(t, err)
		cachedHash = h
	})
	return cachedHash
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// memStore is an in-memory stand-in for the three tables.
// Values are copied on the way in and out so callers cannot mutate stored rows.
type memStore struct {
	users    map[uuid.UUID]entity.User
	sessions map[string]entity.Session
	tokens   map[uuid.UUID]entity.Token

	createErr      error
	updateErr      error
	tokenCreateErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]entity.User{},
		sessions: map[string]entity.Session{},
		tokens:   map[uuid.UUID]entity.Token{},
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:    &memUserRepo{s},
		Session: &memSessionRepo{s},
		Token:   &memTokenRepo{s},
		Tx:      &memTx{s},
	}
}

func (s *memStore) tokensFor(kind entity.TokenKind, email string) []entity.Token {
	var out []entity.Token
	for _, t := range s.tokens {
		if t.Kind == kind && t.Email == email {
			out = append(out, t)
		}
	}
	return out
}

func (s *memStore) sessionsFor(userID uuid.UUID) []entity.Session {
	var out []entity.Session
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	return out
}

// duplicateOf mirrors the unique constraints on users.email and users.identification
func (s *memStore) duplicateOf(user *entity.User) error {
	for _, u := range s.users {
		if u.ID == user.ID {
			continue
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if u.Identification != nil && user.Identification != nil && *u.Identification == *user.Identification {
			return repository.ErrDuplicateIdentification
		}
	}
	return nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.s.createErr != nil {
		return r.s.createErr
	}
	if err := r.s.duplicateOf(user); err != nil {
		return err
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByIdentification(_ context.Context, identification string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Identification != nil && *u.Identification == identification {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(_ context.Context, excludeID uuid.UUID, limit, offset int) ([]*entity.User, error) {
	var all []*entity.User
	for _, u := range r.s.users {
		if u.ID == excludeID {
			continue
		}
		u := u
		all = append(all, &u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memUserRepo) CountAll(_ context.Context, excludeID uuid.UUID) (int64, error) {
	var n int64
	for id := range r.s.users {
		if id != excludeID {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	if r.s.updateErr != nil {
		return r.s.updateErr
	}
	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNoRowsAffected
	}
	if err := r.s.duplicateOf(user); err != nil {
		return err
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) SetStatus(_ context.Context, id uuid.UUID, status bool) error {
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	u.Status = status
	r.s.users[id] = u
	return nil
}

type memSessionRepo struct{ s *memStore }

func (r *memSessionRepo) Create(_ context.Context, session *entity.Session) error {
	if _, ok := r.s.sessions[session.SessionToken]; ok {
		return errors.New("duplicate session token")
	}
	r.s.sessions[session.SessionToken] = *session
	return nil
}

func (r *memSessionRepo) FindByToken(_ context.Context, token string) (*entity.Session, error) {
	sess, ok := r.s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (r *memSessionRepo) FindActiveByUser(_ context.Context, userID uuid.UUID, now time.Time) (*entity.Session, error) {
	var best *entity.Session
	for _, sess := range r.s.sessions {
		if sess.UserID != userID || !sess.ExpiresAt.After(now) {
			continue
		}
		sess := sess
		if best == nil || sess.ExpiresAt.After(best.ExpiresAt) {
			best = &sess
		}
	}
	return best, nil
}

func (r *memSessionRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.s.sessions[token]; !ok {
		return repository.ErrNoRowsAffected
	}
	delete(r.s.sessions, token)
	return nil
}

func (r *memSessionRepo) DeleteByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for token, sess := range r.s.sessions {
		if sess.UserID == userID {
			delete(r.s.sessions, token)
			n++
		}
	}
	return n, nil
}

func (r *memSessionRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for token, sess := range r.s.sessions {
		if !sess.ExpiresAt.After(before) {
			delete(r.s.sessions, token)
			n++
		}
	}
	return n, nil
}

type memTokenRepo struct{ s *memStore }

func (r *memTokenRepo) Create(_ context.Context, token *entity.Token) error {
	if r.s.tokenCreateErr != nil {
		return r.s.tokenCreateErr
	}
	for _, t := range r.s.tokens {
		if t.Token == token.Token || (t.Kind == token.Kind && t.Email == token.Email) {
			return errors.New("duplicate token")
		}
	}
	r.s.tokens[token.ID] = *token
	return nil
}

func (r *memTokenRepo) FindByValue(_ context.Context, value string) (*entity.Token, error) {
	for _, t := range r.s.tokens {
		if t.Token == value {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *memTokenRepo) FindByEmail(_ context.Context, kind entity.TokenKind, email string) (*entity.Token, error) {
	for _, t := range r.s.tokens {
		if t.Kind == kind && t.Email == email {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *memTokenRepo) DeleteByEmail(_ context.Context, kind entity.TokenKind, email string) error {
	for id, t := range r.s.tokens {
		if t.Kind == kind && t.Email == email {
			delete(r.s.tokens, id)
		}
	}
	return nil
}

func (r *memTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.tokens[id]; !ok {
		return repository.ErrNoRowsAffected
	}
	delete(r.s.tokens, id)
	return nil
}

func (r *memTokenRepo) TakeByValue(_ context.Context, kind entity.TokenKind, value string) (*entity.Token, error) {
	for id, t := range r.s.tokens {
		if t.Kind == kind && t.Token == value {
			delete(r.s.tokens, id)
			return &t, nil
		}
	}
	return nil, nil
}

// memTx snapshots the store and restores it when fn fails
type memTx struct{ s *memStore }

type memTxRepos struct{ s *memStore }

func (r memTxRepos) Users() repository.UserRepository   { return &memUserRepo{r.s} }
func (r memTxRepos) Tokens() repository.TokenRepository { return &memTokenRepo{r.s} }

func (tx *memTx) WithinTx(_ context.Context, fn func(r repository.TxRepos) error) error {
	users := make(map[uuid.UUID]entity.User, len(tx.s.users))
	for k, v := range tx.s.users {
		users[k] = v
	}
	tokens := make(map[uuid.UUID]entity.Token, len(tx.s.tokens))
	for k, v := range tx.s.tokens {
		tokens[k] = v
	}

	if err := fn(memTxRepos{tx.s}); err != nil {
		tx.s.users = users
		tx.s.tokens = tokens
		return err
	}
	return nil
}

type sentLink struct {
	kind  entity.TokenKind
	email string
	token string
}

type recordingNotifier struct {
	sent []sentLink
	err  error
}

func (n *recordingNotifier) SendLink(_ context.Context, kind entity.TokenKind, email, token string) error {
	n.sent = append(n.sent, sentLink{kind: kind, email: email, token: token})
	return n.err
}

func (n *recordingNotifier) last(t *testing.T) sentLink {
	t.Helper()
	require.NotEmpty(t, n.sent, "no link was sent")
	return n.sent[len(n.sent)-1]
}

type authFixture struct {
	svc    *authService
	store  *memStore
	notify *recordingNotifier
	clock  *fakeClock
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	store := newMemStore()
	notify := &recordingNotifier{}
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}

	config := &utils.Config{JWT: utils.JWTConfig{Secret: testSecret}}
	svc := NewAuthService(store.repository(), config, notify, zap.NewNop()).(*authService)
	svc.now = clock.Now

	return &authFixture{svc: svc, store: store, notify: notify, clock: clock}
}

type userOpt func(u *entity.User)

func unverified() userOpt { return func(u *entity.User) { u.EmailVerified = nil } }
func disabled() userOpt   { return func(u *entity.User) { u.Status = false } }
func noPassword() userOpt { return func(u *entity.User) { u.PasswordHash = nil } }

func withRole(role entity.Role) userOpt { return func(u *entity.User) { u.Role = role } }

func (f *authFixture) addUser(t *testing.T, email string, opts ...userOpt) *entity.User {
	t.Helper()

	hash := testPasswordHash(t)
	verifiedAt := f.clock.now.Add(-24 * time.Hour)
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: verifiedAt,
			UpdatedAt: verifiedAt,
		},
		Email:         email,
		PasswordHash:  &hash,
		Name:          "Test",
		Role:          entity.RoleCustomer,
		EmailVerified: &verifiedAt,
		Status:        true,
	}
	for _, opt := range opts {
		opt(user)
	}

	f.store.users[user.ID] = *user
	return user
}
