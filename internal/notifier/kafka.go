package notifier

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"crossfit-api/internal/data/entity"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

const (
	EventVerifyEmail   = "user.verify_email"
	EventResetPassword = "user.reset_password"
)

// LinkEvent is the payload consumed by the mail service
type LinkEvent struct {
	Kind      entity.TokenKind `json:"kind"`
	Email     string           `json:"email"`
	Token     string           `json:"token"`
	Link      string           `json:"link"`
	CreatedAt time.Time        `json:"created_at"`
}

type KafkaConfig struct {
	Broker   string
	Topic    string
	User     string
	Password string
}

// MessageWriter is the subset of *kafka.Writer the notifier needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes link events instead of talking SMTP itself
type KafkaNotifier struct {
	writer MessageWriter
	links  LinkBuilder
	log    *zap.Logger
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	transport := &kafka.Transport{}
	if cfg.User != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.User,
			Password: cfg.Password,
		}
		transport.TLS = &tls.Config{}
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		Transport:    transport,
		WriteTimeout: 10 * time.Second,
	}
}

func NewKafkaNotifier(writer MessageWriter, links LinkBuilder, log *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: writer,
		links:  links,
		log:    log.With(zap.String("notifier", "kafka")),
	}
}

func (n *KafkaNotifier) SendLink(ctx context.Context, kind entity.TokenKind, email, token string) error {
	link, err := n.links.Link(kind, token)
	if err != nil {
		return err
	}

	key := EventVerifyEmail
	if kind == entity.TokenKindPasswordReset {
		key = EventResetPassword
	}

	payload, err := json.Marshal(LinkEvent{
		Kind:      kind,
		Email:     email,
		Token:     token,
		Link:      link,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", key, err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", key, err)
	}

	n.log.Debug("Link event published", zap.String("event", key), zap.String("email", email))
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
