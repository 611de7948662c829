package appstate

import (
	"bytes"
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
)

type AuthMethod string

const (
	AuthNone        AuthMethod = ""
	AuthPIN         AuthMethod = "pin"
	AuthFingerprint AuthMethod = "fingerprint"
)

func (m AuthMethod) Valid() bool { return m == AuthPIN || m == AuthFingerprint }

const (
	minPINLength = 4
	maxPINLength = 6
)

// State reads and writes the device flags.
type State struct {
	repo Repository
}

func New(repo Repository) *State {
	return &State{repo: repo}
}

func (s *State) OnboardingCompleted(ctx context.Context) (bool, error) {
	v, err := s.repo.Get(ctx, KeyOnboarding)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(v)) == "true", nil
}

func (s *State) CompleteOnboarding(ctx context.Context) error {
	return s.repo.Set(ctx, KeyOnboarding, []byte("true"))
}

// AuthMethod returns the chosen lock method, AuthNone when unset or
// unrecognised.
func (s *State) AuthMethod(ctx context.Context) (AuthMethod, error) {
	v, err := s.repo.Get(ctx, KeyAuthMethod)
	if err != nil {
		return AuthNone, err
	}
	m := AuthMethod(strings.TrimSpace(string(v)))
	if !m.Valid() {
		return AuthNone, nil
	}
	return m, nil
}

func (s *State) SetAuthMethod(ctx context.Context, m AuthMethod) error {
	if !m.Valid() {
		return fmt.Errorf("%w: unknown auth method %q", common.ErrorValidation, m)
	}
	return s.repo.Set(ctx, KeyAuthMethod, []byte(m))
}

// ValidatePIN checks that pin is 4 to 6 ASCII digits.
func ValidatePIN(pin []byte) error {
	if len(pin) < minPINLength || len(pin) > maxPINLength {
		return fmt.Errorf("%w: pin must be %d to %d digits", common.ErrorInvalidPinFormat, minPINLength, maxPINLength)
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: pin must contain digits only", common.ErrorInvalidPinFormat)
		}
	}
	return nil
}

// SetPIN stores pin as given and selects PIN as the lock method.
func (s *State) SetPIN(ctx context.Context, pin []byte) error {
	if err := ValidatePIN(pin); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, KeyPIN, pin); err != nil {
		return err
	}
	return s.SetAuthMethod(ctx, AuthPIN)
}

func (s *State) HasPIN(ctx context.Context) (bool, error) {
	v, err := s.repo.Get(ctx, KeyPIN)
	if err != nil {
		return false, err
	}
	return len(bytes.TrimSpace(v)) > 0, nil
}

// VerifyPIN compares pin with the stored one in constant time.
func (s *State) VerifyPIN(ctx context.Context, pin []byte) error {
	stored, err := s.repo.Get(ctx, KeyPIN)
	if err != nil {
		return err
	}
	stored = bytes.TrimSpace(stored)
	defer common.WipeByteArray(stored)

	if len(stored) == 0 {
		return common.ErrorPinNotSet
	}
	if subtle.ConstantTimeCompare(stored, pin) != 1 {
		return common.ErrorPinMismatch
	}
	return nil
}

// ClearPIN removes the stored PIN and lock method.
func (s *State) ClearPIN(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyPIN); err != nil {
		return err
	}
	return s.repo.Delete(ctx, KeyAuthMethod)
}
