package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Verification / reset code helpers. Codes for both purposes share the same
// shape: a 6-digit numeric string drawn uniformly from 100000-999999.

const (
	codeMin  = 100000
	codeSpan = 900000
)

// GenNumericCode generates a secure random 6-digit code.
func GenNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}
