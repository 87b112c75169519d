package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/localserve/internal/identity/domain"
	"github.com/aussiebroadwan/localserve/internal/identity/metrics"
	"github.com/aussiebroadwan/localserve/internal/identity/notify"
	"github.com/aussiebroadwan/localserve/pkg/slogx"
)

const (
	DefaultOTPTTL        = 5 * time.Minute
	DefaultNotifyTimeout = 10 * time.Second
)

// Signup messages. The account exists in both cases.
const (
	MessageCodeSent    = "OTP sent to your email. Please verify to login."
	MessageCodeNotSent = "User registered but failed to send OTP email"
)

// metric labels
const (
	triggerSignup   = "signup"
	triggerResend   = "resend"
	outcomeVerified = "verified"
	outcomeLoggedIn = "ok"
)

// CodeGenerator produces fresh one-time codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// IdentityService drives the account lifecycle
// Unregistered -> PendingVerification -> Verified.
type IdentityService struct {
	Credentials *CredentialStore
	Codes       CodeGenerator
	Notifier    notify.Notifier
	Metrics     *metrics.Metrics

	// OTPTTL is how long an issued code stays valid. Zero means DefaultOTPTTL.
	OTPTTL time.Duration

	// NotifyTimeout bounds each delivery. Zero means DefaultNotifyTimeout.
	NotifyTimeout time.Duration

	background sync.WaitGroup
}

// SignupInput is the raw registration request.
type SignupInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	Mobile      string
	Address     string
	ServiceType string
	ServiceArea string
}

// SignupResult carries the new account and whether the code reached the
// notifier. A failed delivery does not fail the signup.
type SignupResult struct {
	Account   domain.Projection
	Delivered bool
	Message   string
}

func (s *IdentityService) ttl() time.Duration {
	if s.OTPTTL > 0 {
		return s.OTPTTL
	}
	return DefaultOTPTTL
}

func (s *IdentityService) notifyTimeout() time.Duration {
	if s.NotifyTimeout > 0 {
		return s.NotifyTimeout
	}
	return DefaultNotifyTimeout
}

// Signup registers an account, issues its first code and tries to deliver it.
func (s *IdentityService) Signup(ctx context.Context, in SignupInput) (SignupResult, error) {
	required := []struct{ field, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"password", in.Password},
		{"role", in.Role},
	}
	for _, r := range required {
		if r.value == "" {
			return SignupResult{}, &ValidationError{Field: r.field}
		}
	}

	role := domain.Role(in.Role)
	if !role.Valid() {
		return SignupResult{}, &ValidationError{Field: "role", Message: "role must be customer or provider"}
	}

	acc, err := s.Credentials.Create(ctx, domain.Profile{
		Name:        in.Name,
		Email:       in.Email,
		Role:        role,
		Mobile:      in.Mobile,
		Address:     in.Address,
		ServiceType: in.ServiceType,
		ServiceArea: in.ServiceArea,
	}, in.Password)
	if err != nil {
		return SignupResult{}, err
	}
	s.Metrics.Signup(string(role))

	ctx = slogx.With(ctx, slog.String("account_id", acc.ID.String()))
	l := slogx.FromContext(ctx)
	l.Info("account created", slog.String("role", string(role)))

	// The account is persisted from here on, so failing to issue or deliver
	// the first code is reported like a lost mail; /send-otp recovers both.
	result := SignupResult{Account: acc.Project(), Delivered: true, Message: MessageCodeSent}
	code, err := s.issueCode(ctx, in.Email, triggerSignup)
	if err == nil {
		err = s.deliver(ctx, in.Email, code)
	}
	if err != nil {
		l.Warn("signup code not sent", slog.Any("error", err))
		result.Delivered = false
		result.Message = MessageCodeNotSent
	}
	return result, nil
}

// ResendOTP replaces the pending code of an unverified account and delivers
// the new one. Unlike Signup a failed delivery is an error here.
func (s *IdentityService) ResendOTP(ctx context.Context, email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email required"}
	}

	acc, err := s.Credentials.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if acc.Verified {
		return ErrAlreadyVerified
	}

	code, err := s.issueCode(ctx, email, triggerResend)
	if err != nil {
		return err
	}

	if err := s.deliver(ctx, email, code); err != nil {
		slogx.FromContext(ctx).Warn("code delivery failed", slog.String("account_id", acc.ID.String()), slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrNotifierFailure, err)
	}
	return nil
}

// VerifyOTP checks a submitted code and marks the account verified.
func (s *IdentityService) VerifyOTP(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		field := "email"
		if email != "" {
			field = "otp"
		}
		return &ValidationError{Field: field, Message: "Email and OTP required"}
	}

	if err := s.Credentials.VerifyOTP(ctx, email, code); err != nil {
		s.Metrics.Verification(Kind(err))
		return err
	}
	s.Metrics.Verification(outcomeVerified)

	acc, err := s.Credentials.FindByEmail(ctx, email)
	if err != nil {
		// Verification already happened; the welcome is best effort
		slogx.FromContext(ctx).Warn("verified account vanished before welcome", slog.Any("error", err))
		return nil
	}
	ctx = slogx.With(ctx, slog.String("account_id", acc.ID.String()))
	slogx.FromContext(ctx).Info("account verified")
	s.welcome(ctx, acc)
	return nil
}

// Login checks credentials of a verified account. It issues no token; the
// returned projection is the proof of authentication.
func (s *IdentityService) Login(ctx context.Context, email, password string) (domain.Projection, error) {
	if email == "" || password == "" {
		field := "email"
		if email != "" {
			field = "password"
		}
		return domain.Projection{}, &ValidationError{Field: field, Message: "Email and password required"}
	}

	acc, err := s.login(ctx, email, password)
	if err != nil {
		s.Metrics.Login(Kind(err))
		return domain.Projection{}, err
	}
	s.Metrics.Login(outcomeLoggedIn)
	return acc.Project(), nil
}

func (s *IdentityService) login(ctx context.Context, email, password string) (domain.Account, error) {
	acc, err := s.Credentials.FindByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, err
	}

	// Verification is checked first so the client can prompt for a code
	if !acc.Verified {
		return domain.Account{}, ErrNotVerified
	}
	if !CheckPassword(password, acc.PasswordHash) {
		slogx.FromContext(ctx).Info("login rejected", slog.String("account_id", acc.ID.String()))
		return domain.Account{}, ErrInvalidPassword
	}
	return acc, nil
}

// Lookup returns the projection of an account by id, for collaborators that
// only need a stable identifier and role.
func (s *IdentityService) Lookup(ctx context.Context, id string) (domain.Projection, error) {
	acc, err := s.Credentials.FindByID(ctx, id)
	if err != nil {
		return domain.Projection{}, err
	}
	return acc.Project(), nil
}

// Wait blocks until background deliveries have finished.
func (s *IdentityService) Wait() {
	s.background.Wait()
}

func (s *IdentityService) issueCode(ctx context.Context, email, trigger string) (string, error) {
	code, err := s.Codes.Generate()
	if err != nil {
		return "", err
	}
	if _, err := s.Credentials.SetOTP(ctx, email, code, s.ttl()); err != nil {
		return "", err
	}
	s.Metrics.CodeIssued(trigger)
	return code, nil
}

func (s *IdentityService) deliver(ctx context.Context, to, code string) error {
	if s.Notifier == nil {
		return errors.New("no notifier configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout())
	defer cancel()

	err := s.Notifier.DeliverCode(ctx, to, code)
	s.Metrics.Delivery(err == nil)
	return err
}

// welcome greets a newly verified user without holding up the response.
func (s *IdentityService) welcome(ctx context.Context, acc domain.Account) {
	wn, ok := s.Notifier.(notify.WelcomeNotifier)
	if !ok {
		return
	}

	ctx = context.WithoutCancel(ctx)
	s.background.Add(1)
	go func() {
		defer s.background.Done()

		ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout())
		defer cancel()

		if err := wn.DeliverWelcome(ctx, acc.Email, acc.Name); err != nil {
			slogx.FromContext(ctx).Warn("welcome delivery failed", slog.Any("error", err))
		}
	}()
}
