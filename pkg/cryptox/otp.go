package cryptox

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/pquerna/otp"
)

// OTPGenerator produces numeric one-time codes, uniformly distributed over
// [0, 10^digits) and zero-padded. Each call is independent; codes are not
// unique across accounts.
type OTPGenerator struct {
	// Digits is the code length (six or eight). Zero means six.
	Digits otp.Digits

	// Source of randomness. Nil means crypto/rand.Reader.
	Source io.Reader
}

// NewOTPGenerator validates the digit count and returns a generator backed by crypto/rand.
func NewOTPGenerator(digits otp.Digits) (*OTPGenerator, error) {
	switch digits {
	case otp.DigitsSix, otp.DigitsEight:
	default:
		return nil, fmt.Errorf("unsupported otp length %d: must be 6 or 8", digits)
	}
	return &OTPGenerator{Digits: digits}, nil
}

// Generate draws a fresh code.
func (g *OTPGenerator) Generate() (string, error) {
	digits := g.Digits
	if digits == 0 {
		digits = otp.DigitsSix
	}

	src := g.Source
	if src == nil {
		src = rand.Reader
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits.Length())), nil)
	n, err := rand.Int(src, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	return digits.Format(int32(n.Int64())), nil // #nosec G115 - n < 10^8
}
