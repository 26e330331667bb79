package helpers

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
)

const (
	codeMin = 1000
	codeMax = 10000
)

var phonePattern = regexp.MustCompile(`^05\d{8}$`)

// ValidPhone reports whether phone is a local mobile number: 05 followed by 8 digits.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// GenCode returns a uniformly random 4-digit code in [1000, 9999].
func GenCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

// MaskPhone keeps the prefix and last two digits, e.g. 050*****67.
func MaskPhone(phone string) string {
	if len(phone) < 5 {
		return "***"
	}
	masked := []byte(phone)
	for i := 3; i < len(masked)-2; i++ {
		masked[i] = '*'
	}
	return string(masked)
}
