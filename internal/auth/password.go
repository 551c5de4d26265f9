package auth

import (
	"crypto/sha1"   // Legacy hash of the original service
	"crypto/subtle" // Constant-time comparison
	"encoding/hex"
	"strings"

	"geo_ads/internal/utils" // Salt generation

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// passwordDelimiter separates salt and hash in the stored password
const passwordDelimiter = "|"

// HashPassword returns the stored form salt|bcrypt(salt+password) with a fresh salt
func HashPassword(password string, cost int) (string, error) {
	salt, err := utils.GenerateSalt()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(salt+password), cost)
	if err != nil {
		return "", err // bcrypt.ErrPasswordTooLong past 72 bytes
	}
	return salt + passwordDelimiter + string(hash), nil
}

// CheckPassword reports whether password matches a stored salt|hash value.
// Hashes written by the original service are hex SHA-1 and still verify.
func CheckPassword(stored, password string) bool {
	salt, hash, ok := strings.Cut(stored, passwordDelimiter)
	if !ok || hash == "" {
		return false
	}
	if isLegacySHA1(hash) {
		sum := sha1.Sum([]byte(salt + password))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(strings.ToLower(hash))) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(salt+password)) == nil
}

func isLegacySHA1(hash string) bool {
	if len(hash) != sha1.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
