// Command identity serves account registration, email OTP verification and
// login for the local services platform.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/localserve/internal/identity/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "identity:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return application.Run(ctx)
}
