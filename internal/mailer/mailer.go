// Package mailer abstracts outbound verification email delivery.
package mailer

import (
	"context"
	"log/slog"

	"pulse/internal/middleware"
)

// Sender delivers one-time verification codes to users. Provider
// integration lives behind this interface; the default implementation
// only logs, which is what local development and tests want.
type Sender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordReset(ctx context.Context, email, code string) error
}

// LogSender writes outbound mail to the structured log instead of
// sending it.
type LogSender struct{}

// NewLogSender returns the logging Sender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendVerificationCode(ctx context.Context, email, code string) error {
	middleware.Logger.InfoContext(ctx, "verification code issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}

func (s *LogSender) SendPasswordReset(ctx context.Context, email, code string) error {
	middleware.Logger.InfoContext(ctx, "password reset code issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}
