package services

import (
	"Staffline/internal/config"
	"Staffline/internal/metrics"
	"context"
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"
)

//go:generate mockgen -destination=./mocks/mail_service.go -package=mocks Staffline/internal/services MailService
type MailService interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// Sender delivers prepared messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailService struct {
	sender  Sender
	from    string
	timeout time.Duration
}

func NewMailService(mc config.MailConfig) MailService {
	dialer := gomail.NewDialer(mc.Host, mc.Port, mc.Username, mc.Password)
	dialer.Timeout = mc.Timeout

	return NewMailServiceWithSender(dialer, mc.From, mc.Timeout)
}

// NewMailServiceWithSender bounds every Send by timeout. A zero timeout
// leaves the bound to the caller's context.
func NewMailServiceWithSender(sender Sender, from string, timeout time.Duration) MailService {
	return &mailService{
		sender:  sender,
		from:    from,
		timeout: timeout,
	}
}

func (s *mailService) Send(ctx context.Context, to string, subject string, body string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- s.sender.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			metrics.MailsSent.WithLabelValues("failed").Inc()
			return fmt.Errorf("sending mail: %w", err)
		}

	case <-ctx.Done():
		metrics.MailsSent.WithLabelValues("failed").Inc()
		return fmt.Errorf("sending mail: %w", ctx.Err())
	}

	metrics.MailsSent.WithLabelValues("sent").Inc()
	return nil
}
