package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// tokenByteLen is the length of the random session token in bytes.
// 32 bytes of entropy, base64url encoded to 43 characters.
const tokenByteLen = 32

// GenerateSessionToken creates a new opaque session token.
// The plaintext goes to the client; only its hash is stored server-side,
// so a leaked session store cannot be replayed.
func GenerateSessionToken() (string, error) {
	b := make([]byte, tokenByteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashToken returns the hex-encoded SHA-256 of a session token.
// Used as the session store key. This is NOT for password storage.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
