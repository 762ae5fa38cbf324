package notifier

import (
	"context"

	"crossfit-api/internal/data/entity"

	"go.uber.org/zap"
)

// LogNotifier writes the link to the log instead of sending mail (development)
type LogNotifier struct {
	links LinkBuilder
	log   *zap.Logger
}

func NewLogNotifier(links LinkBuilder, log *zap.Logger) *LogNotifier {
	return &LogNotifier{
		links: links,
		log:   log.With(zap.String("notifier", "log")),
	}
}

func (n *LogNotifier) SendLink(ctx context.Context, kind entity.TokenKind, email, token string) error {
	link, err := n.links.Link(kind, token)
	if err != nil {
		return err
	}

	n.log.Info("Mail link generated",
		zap.String("email", email),
		zap.String("kind", string(kind)),
		zap.String("subject", subjectFor(kind)),
		zap.String("link", link),
	)
	return nil
}
