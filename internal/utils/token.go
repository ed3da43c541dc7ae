package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/uptask-dev/uptask-api/internal/constants"
)

// GenerateTokenCode generates a random numeric code of TokenCodeLength digits,
// the kind that gets typed from a confirmation email.
func GenerateTokenCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < constants.TokenCodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}

	return fmt.Sprintf("%0*d", constants.TokenCodeLength, n), nil
}
