package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a generated verification code.
const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// Generator produces verification codes. Implementations must be safe for
// concurrent use; tests substitute a deterministic generator.
type Generator interface {
	Generate() (string, error)
}

// NewGenerator returns the production generator backed by crypto/rand.
func NewGenerator() Generator {
	return randomGenerator{}
}

type randomGenerator struct{}

// Generate returns a zero-padded 6-digit code uniformly distributed over
// [000000, 999999].
func (randomGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Fixed returns a generator that always yields the same code. Intended for tests.
func Fixed(code string) Generator {
	return fixedGenerator(code)
}

type fixedGenerator string

func (g fixedGenerator) Generate() (string, error) {
	return string(g), nil
}
