package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

var codeSpace = big.NewInt(1_000_000)

// NewCode returns a uniformly random 6-digit numeric code, zero-padded.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// NewChallenge returns prefix followed by a dash and 12 random hex characters.
func NewChallenge(prefix string) (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate challenge: %w", err)
	}
	return prefix + "-" + hex.EncodeToString(b), nil
}
