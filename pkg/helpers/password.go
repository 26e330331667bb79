package helpers

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored credentials.
const PasswordCost = 10

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// MaxPasswordLen is the longest input bcrypt accepts.
const MaxPasswordLen = 72

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("foodshare-no-such-account"), PasswordCost)
	return h
})

// BurnPasswordCheck costs the same as CompareHashAndPassword against a stored
// hash and always reports false. Used when there is no account to check.
func BurnPasswordCheck(plain string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(plain))
	return false
}

// StrongPassword requires 8 to MaxPasswordLen ASCII letters or digits with at least one of each.
func StrongPassword(pw string) bool {
	if len(pw) < 8 || len(pw) > MaxPasswordLen {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return false
		}
	}
	return letter && digit
}
