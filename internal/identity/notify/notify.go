// Package notify delivers one-time codes and account messages to users.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
)

// Notifier delivers a one-time code to an address. A nil error means the
// message was handed off; the error text is the delivery detail otherwise.
type Notifier interface {
	DeliverCode(ctx context.Context, to, code string) error
}

// WelcomeNotifier is implemented by notifiers that can also greet a user
// once their address is verified.
type WelcomeNotifier interface {
	DeliverWelcome(ctx context.Context, to, name string) error
}

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	codeSubject    = "Your OTP for Local Service Platform"
	welcomeSubject = "Welcome to Local Service Platform"
)

type codeData struct {
	Code          string
	ExpiryMinutes int
}

type welcomeData struct {
	Name string
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
