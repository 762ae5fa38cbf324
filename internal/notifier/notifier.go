// Package notifier delivers verification and password-reset links.
// Delivery is best-effort: callers log failures and carry on.
package notifier

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"crossfit-api/internal/data/entity"
)

type Notifier interface {
	SendLink(ctx context.Context, kind entity.TokenKind, email, token string) error
}

// Closer is implemented by notifiers that hold a connection
type Closer interface {
	Close() error
}

// LinkBuilder turns a token into the frontend URL that consumes it
type LinkBuilder struct {
	BaseURL string
}

func (b LinkBuilder) Link(kind entity.TokenKind, token string) (string, error) {
	base := strings.TrimRight(b.BaseURL, "/")

	switch kind {
	case entity.TokenKindVerification:
		return fmt.Sprintf("%s/new-verification?token=%s", base, url.QueryEscape(token)), nil
	case entity.TokenKindPasswordReset:
		return fmt.Sprintf("%s/new-password?token=%s", base, url.QueryEscape(token)), nil
	default:
		return "", fmt.Errorf("unknown token kind %q", kind)
	}
}

func subjectFor(kind entity.TokenKind) string {
	if kind == entity.TokenKindPasswordReset {
		return "Reset your password"
	}
	return "Confirm your email"
}
