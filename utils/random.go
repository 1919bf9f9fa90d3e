package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateCode returns n random bytes as upper-case hex.
func GenerateCode(n int) (string, error) {
	byt := make([]byte, n)
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// ReferenceCode builds a human readable reference such as "ORG-1A2B3C4D".
func ReferenceCode(prefix string) (string, error) {
	code, err := GenerateCode(4)
	if err != nil {
		return "", err
	}
	return prefix + "-" + code, nil
}
