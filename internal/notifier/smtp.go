package notifier

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"crossfit-api/internal/data/entity"

	"go.uber.org/zap"
)

var mailTemplate = template.Must(template.New("link").Parse(
	`<p>Click <a href="{{.Link}}">here</a> to {{.Action}}.</p>` +
		`<p>This link expires in one hour.</p>`))

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SMTPNotifier sends the link as an HTML mail over STARTTLS with PLAIN auth
type SMTPNotifier struct {
	cfg   SMTPConfig
	links LinkBuilder
	log   *zap.Logger
}

func NewSMTPNotifier(cfg SMTPConfig, links LinkBuilder, log *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:   cfg,
		links: links,
		log:   log.With(zap.String("notifier", "smtp")),
	}
}

func (n *SMTPNotifier) SendLink(ctx context.Context, kind entity.TokenKind, email, token string) error {
	link, err := n.links.Link(kind, token)
	if err != nil {
		return err
	}

	body, err := renderBody(kind, link)
	if err != nil {
		return fmt.Errorf("render mail body: %w", err)
	}

	msg := buildMessage(n.cfg.From, email, subjectFor(kind), body)

	if err := n.send(ctx, email, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", email, err)
	}

	n.log.Info("Mail sent", zap.String("email", email), zap.String("kind", string(kind)))
	return nil
}

func renderBody(kind entity.TokenKind, link string) (string, error) {
	action := "confirm your email"
	if kind == entity.TokenKindPasswordReset {
		action = "reset your password"
	}

	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, map[string]string{"Link": link, "Action": action}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	return []byte(strings.Join([]string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n"))
}

func (n *SMTPNotifier) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(n.cfg.Host, fmt.Sprintf("%d", n.cfg.Port))

	dialer := &net.Dialer{Timeout: 8 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(15 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: n.cfg.Host}); err != nil {
			return err
		}
	}

	if n.cfg.User != "" {
		auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(n.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
