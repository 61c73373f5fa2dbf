package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/cannaconnect/cannaconnect-api/internal/logger"
)

// Mailer delivers account emails.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, link string) error
}

// LogMailer writes the verification link to the request logger instead of sending mail.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (LogMailer) SendVerification(ctx context.Context, to, name, link string) error {
	logger.FromContext(ctx).Info("Verification email",
		zap.String("to", to),
		zap.String("name", name),
		zap.String("link", link),
	)
	return nil
}
