package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fakhrymubarak/city-dashboard/internal/config"
	"github.com/wneessen/go-mail"
)

var (
	ErrMissingRecipient    = errors.New("recipient is required")
	ErrInvalidRecipient    = errors.New("invalid recipient address")
	ErrSenderNotConfigured = errors.New("email sender is not configured")
)

// Sender delivers prepared messages. *mail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type EmailService struct {
	sender Sender
	from   string
}

func NewEmailService(sender Sender, from string) *EmailService {
	return &EmailService{sender: sender, from: from}
}

// NewSMTPClient connects with PLAIN auth and mandatory STARTTLS.
func NewSMTPClient(host string, port int, username, password string) (*mail.Client, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}

// BuildMessage prepares a plain-text message from the configured account.
func (s *EmailService) BuildMessage(to, subject, text string) (*mail.Msg, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, ErrMissingRecipient
	}
	if s.from == "" {
		return nil, ErrSenderNotConfigured
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSenderNotConfigured, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	return msg, nil
}

func (s *EmailService) Send(ctx context.Context, to, subject, text string) error {
	msg, err := s.BuildMessage(to, subject, text)
	if err != nil {
		return err
	}
	if s.sender == nil {
		return ErrSenderNotConfigured
	}
	if err := s.sender.DialAndSendWithContext(ctx, msg); err != nil {
		config.GetLogger().Errorw("Failed to send email", "to", to, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	config.GetLogger().Infow("Email sent", "to", to)
	return nil
}
