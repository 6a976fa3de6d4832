package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialCodec isolates how passwords are stored so the hashing scheme
// can be swapped without touching the store. The original design kept
// plaintext credentials; that stays the default for parity, with bcrypt
// available behind the same interface.
type CredentialCodec interface {
	// Encode transforms a raw password into its stored form.
	Encode(password string) (string, error)
	// Verify reports whether password matches the stored form.
	Verify(stored, password string) bool
}

// NewCredentialCodec returns the codec named in configuration.
// Supported: "plaintext" (default when name is empty) and "bcrypt".
func NewCredentialCodec(name string) (CredentialCodec, error) {
	switch name {
	case "", "plaintext":
		return plaintextCodec{}, nil
	case "bcrypt":
		return bcryptCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown credential codec %q", name)
	}
}

type plaintextCodec struct{}

func (plaintextCodec) Encode(password string) (string, error) {
	return password, nil
}

func (plaintextCodec) Verify(stored, password string) bool {
	return stored == password
}

type bcryptCodec struct{}

func (bcryptCodec) Encode(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (bcryptCodec) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
