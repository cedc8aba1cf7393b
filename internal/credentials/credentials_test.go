package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflow/lms/internal/entities"
)

func TestHashPassword_DeterministicForSameSalt(t *testing.T) {
	hash1, salt, err := HashPassword("secret123", "")
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	hash2, salt2, err := HashPassword("secret123", salt)
	require.NoError(t, err)
	assert.Equal(t, salt, salt2)
	assert.Equal(t, hash1, hash2)
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	_, salt1, err := HashPassword("secret123", "")
	require.NoError(t, err)
	_, salt2, err := HashPassword("secret123", "")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
}

func TestHashPassword_MalformedSalt(t *testing.T) {
	_, _, err := HashPassword("secret123", "%%% not base64 %%%")
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hash, salt, err := HashPassword("secret123", "")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("secret123", hash, salt))
	assert.False(t, VerifyPassword("wrong-password", hash, salt))
}

func TestVerifyPassword_MissingMaterial(t *testing.T) {
	hash, salt, err := HashPassword("secret123", "")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("secret123", "", salt))
	assert.False(t, VerifyPassword("secret123", hash, ""))
	assert.False(t, VerifyPassword("secret123", "", ""))
	assert.False(t, VerifyPassword("secret123", hash, "not-base64-%%%"))
}

func TestEnsureHashed_MigratesPlaintext(t *testing.T) {
	user := &entities.User{ID: "E25CSEU1187", Username: "sairam", Password: "sairam123"}

	mutated, err := EnsureHashed(user)
	require.NoError(t, err)

	assert.True(t, mutated)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEmpty(t, user.PasswordSalt)
	assert.True(t, VerifyPassword("sairam123", user.PasswordHash, user.PasswordSalt))
}

func TestEnsureHashed_Idempotent(t *testing.T) {
	user := &entities.User{ID: "E25CSEU1187", Username: "sairam", Password: "sairam123"}

	_, err := EnsureHashed(user)
	require.NoError(t, err)
	hash := user.PasswordHash

	mutated, err := EnsureHashed(user)
	require.NoError(t, err)
	assert.False(t, mutated)
	assert.Equal(t, hash, user.PasswordHash)
}

func TestEnsureHashed_ClearsStrayPlaintext(t *testing.T) {
	hash, salt, err := HashPassword("secret123", "")
	require.NoError(t, err)
	user := &entities.User{
		ID:           "T25CSED101",
		Password:     "secret123",
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	mutated, err := EnsureHashed(user)
	require.NoError(t, err)
	assert.True(t, mutated)
	assert.Empty(t, user.Password)
	assert.Equal(t, hash, user.PasswordHash)
}

func TestEnsureHashed_NoCredentialsAtAll(t *testing.T) {
	user := &entities.User{ID: "B24ECE0045"}

	mutated, err := EnsureHashed(user)
	require.NoError(t, err)
	assert.False(t, mutated)
	assert.Empty(t, user.PasswordHash)
}
