package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooShort is returned by Hash when the password is below the
// configured minimum length.
var ErrPasswordTooShort = errors.New("password too short")

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher struct {
	cost      int
	minLength int

	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordHasher builds a hasher. A cost outside bcrypt's range falls back
// to bcrypt.DefaultCost.
func NewPasswordHasher(cost, minLength int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost, minLength: minLength}
}

// Hash returns the bcrypt hash of plain.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	if len(plain) < h.minLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hashed. An empty hash still costs one
// bcrypt comparison so unknown accounts take as long as wrong passwords.
func (h *PasswordHasher) Verify(hashed, plain string) bool {
	if hashed == "" {
		h.dummyOnce.Do(func() {
			h.dummy, _ = bcrypt.GenerateFromPassword([]byte("unused-account-placeholder"), h.cost)
		})
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
