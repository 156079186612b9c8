package valueobject

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// PasswordHash wraps a bcrypt hash so raw passwords never leave the
// constructor.
type PasswordHash string

// NewPasswordHash hashes a plaintext password
func NewPasswordHash(plain string) (PasswordHash, error) {
	if len(plain) < 8 {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return PasswordHash(hashed), nil
}

// PasswordHashFromStored wraps an already-hashed value loaded from storage
func PasswordHashFromStored(hash string) PasswordHash {
	return PasswordHash(hash)
}

// Verify compares the hash against a plaintext candidate
func (p PasswordHash) Verify(plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(p), []byte(plain)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// String returns the stored hash
func (p PasswordHash) String() string {
	return string(p)
}
