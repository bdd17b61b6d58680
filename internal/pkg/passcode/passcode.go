// Package passcode generates short numeric one-time codes.
package passcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of digits in a generated code.
const Length = 6

var codeSpace = big.NewInt(1_000_000)

// Generator produces one-time passcodes.
type Generator interface {
	Generate() (string, error)
}

// Numeric generates uniformly distributed zero-padded numeric codes
// using crypto/rand.
type Numeric struct{}

// NewNumeric returns a numeric passcode generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a 6-digit code in [000000, 999999], each value equally
// likely. Leading zeros are preserved.
func (Numeric) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("pkgpasscode: generate: %w", err)
	}

	return fmt.Sprintf("%0*d", Length, n.Int64()), nil
}
