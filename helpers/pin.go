package helpers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPinFormat = errors.New("pin must be 4 to 6 digits")

// HashPin stores PINs the same way passwords are stored: bcrypt with a
// per-hash salt, never a reversible encoding.
func HashPin(pin string) (string, error) {
	if !validPin(pin) {
		return "", ErrInvalidPinFormat
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPin(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

func validPin(pin string) bool {
	if len(pin) < 4 || len(pin) > 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
