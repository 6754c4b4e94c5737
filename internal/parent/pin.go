// Package parent guards the parent-only surfaces: the PIN kept as a bcrypt
// hash in settings, and the JWTs handed out by the HTTP API.
package parent

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/wordwise/internal/store"
)

var (
	// ErrInvalidPIN is returned for a PIN that is not 4 to 8 digits.
	ErrInvalidPIN = errors.New("PIN must be 4 to 8 digits")

	// ErrWrongPIN is returned when a PIN does not match the stored hash.
	ErrWrongPIN = errors.New("wrong PIN")
)

const bcryptCost = 12

// ValidatePIN checks the PIN format.
func ValidatePIN(pin string) error {
	if len(pin) < 4 || len(pin) > 8 {
		return ErrInvalidPIN
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrInvalidPIN
		}
	}
	return nil
}

// Guard reads and writes the parent PIN through the settings table.
type Guard struct {
	settings store.SettingsRepo
}

// NewGuard returns a Guard backed by settings.
func NewGuard(settings store.SettingsRepo) *Guard {
	return &Guard{settings: settings}
}

// Enabled reports whether a PIN has been set.
func (g *Guard) Enabled(ctx context.Context) (bool, error) {
	_, ok, err := g.settings.Get(ctx, store.SettingParentPIN)
	if err != nil {
		return false, fmt.Errorf("read parent PIN: %w", err)
	}
	return ok, nil
}

// SetPIN validates pin and stores its hash, replacing any previous one.
func (g *Guard) SetPIN(ctx context.Context, pin string) error {
	if err := ValidatePIN(pin); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash PIN: %w", err)
	}
	return g.settings.Set(ctx, store.SettingParentPIN, string(hash))
}

// ClearPIN removes the PIN so parent screens open without a prompt.
func (g *Guard) ClearPIN(ctx context.Context) error {
	return g.settings.Delete(ctx, store.SettingParentPIN)
}

// Check verifies pin. With no PIN set every attempt passes.
func (g *Guard) Check(ctx context.Context, pin string) error {
	hash, ok, err := g.settings.Get(ctx, store.SettingParentPIN)
	if err != nil {
		return fmt.Errorf("read parent PIN: %w", err)
	}
	if !ok {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongPIN
		}
		return fmt.Errorf("compare PIN: %w", err)
	}
	return nil
}
