package entity

import (
	"time"
)

type TokenKind string

const (
	TokenKindVerification  TokenKind = "VERIFICATION"
	TokenKindPasswordReset TokenKind = "PASSWORD_RESET"
)

// Token is a single-use secret bound to an email, not a user id,
// so it can be issued before a pending email change is saved.
type Token struct {
	BaseSimple
	Kind      TokenKind `db:"kind"`
	Email     string    `db:"email"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (t *Token) ActiveAt(now time.Time) bool {
	return t.ExpiresAt.After(now)
}
