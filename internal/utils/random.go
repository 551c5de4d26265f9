package utils

import (
	"crypto/rand" // Cryptographically secure source
	"math/big"
)

// Lengths of generated secrets
const (
	SaltLength   = 5
	APIKeyLength = 40
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns n characters drawn uniformly from [A-Za-z0-9]
func RandomString(n int) (string, error) {
	limit := big.NewInt(int64(len(alphanumeric)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = alphanumeric[idx.Int64()]
	}
	return string(b), nil
}

// GenerateSalt returns a new password salt
func GenerateSalt() (string, error) {
	return RandomString(SaltLength)
}

// GenerateAPIKey returns a new bearer token for the public API
func GenerateAPIKey() (string, error) {
	return RandomString(APIKeyLength)
}
