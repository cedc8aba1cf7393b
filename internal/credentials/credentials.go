// Package credentials stores and verifies password material. Hashes are
// PBKDF2-SHA256 with a per-user random salt; both values are kept as base64
// strings so they serialize cleanly into the data file.
package credentials

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/bookflow/lms/internal/entities"
)

// KDF parameters are fixed; changing them would invalidate every stored hash.
const (
	pbkdf2Iterations = 260_000
	saltBytes        = 16
)

// GenerateSalt returns a fresh random salt encoded as base64.
func GenerateSalt() (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// HashPassword derives the hash for a password. When salt is empty a new one
// is generated. Returns (hash, salt), both base64. Deterministic for the
// same salt.
func HashPassword(password, salt string) (string, string, error) {
	if salt == "" {
		generated, err := GenerateSalt()
		if err != nil {
			return "", "", err
		}
		salt = generated
	}

	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", "", fmt.Errorf("malformed salt: %w", err)
	}

	hash := pbkdf2.Key([]byte(password), rawSalt, pbkdf2Iterations, sha256.Size, sha256.New)
	return base64.StdEncoding.EncodeToString(hash), salt, nil
}

// VerifyPassword checks a plaintext password against a stored hash and salt
// using a constant-time comparison. Missing or malformed stored material
// verifies as false, never as an error: callers must not be able to tell a
// broken record apart from a wrong password.
func VerifyPassword(password, hash, salt string) bool {
	if hash == "" || salt == "" {
		return false
	}
	candidate, _, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(candidate), []byte(hash))
}

// EnsureHashed migrates a user record that still carries a legacy plaintext
// password to hashed credentials. Idempotent: records that are already
// hashed only have the stray plaintext field cleared. Reports whether the
// record was mutated.
func EnsureHashed(user *entities.User) (bool, error) {
	if user.PasswordHash != "" && user.PasswordSalt != "" {
		if user.Password != "" {
			user.Password = ""
			return true, nil
		}
		return false, nil
	}

	if user.Password == "" {
		return false, nil
	}

	hash, salt, err := HashPassword(user.Password, "")
	if err != nil {
		return false, err
	}
	user.PasswordHash = hash
	user.PasswordSalt = salt
	user.Password = ""
	return true, nil
}
