package notify

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/localserve/pkg/slogx"
)

// LogNotifier writes codes to the request logger instead of sending mail.
// It exists for local development, where the log is the delivery channel.
type LogNotifier struct{}

var (
	_ Notifier        = LogNotifier{}
	_ WelcomeNotifier = LogNotifier{}
)

func (LogNotifier) DeliverCode(ctx context.Context, to, code string) error {
	slogx.FromContext(ctx).Info("otp delivered to log",
		slog.String("to", to),
		slog.String("code", code),
	)
	return nil
}

func (LogNotifier) DeliverWelcome(ctx context.Context, to, name string) error {
	slogx.FromContext(ctx).Info("welcome delivered to log",
		slog.String("to", to),
		slog.String("name", name),
	)
	return nil
}
