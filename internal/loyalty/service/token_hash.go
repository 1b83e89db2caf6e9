package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const opaqueTokenBytes = 32

// NewOpaqueToken returns a random hex token suitable for a QR code.
func NewOpaqueToken() (string, error) {
	b := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashToken returns the HMAC-SHA256 hex digest stored in place of the token.
func HashToken(token string, key []byte) string {
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(token))
	return hex.EncodeToString(m.Sum(nil))
}
