package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const statePurpose = "vk-oauth-state"

// GenerateToken creates an HMAC signature for a purpose and expiration time
func GenerateToken(purpose string, expires int64, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	data := fmt.Sprintf("%s:%d", purpose, expires)
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyToken checks if a given token matches the expected HMAC signature
func VerifyToken(purpose string, expires int64, token string, secret string) bool {
	expected := GenerateToken(purpose, expires, secret)
	return hmac.Equal([]byte(token), []byte(expected))
}

// NewState returns an OAuth state value of the form "<expires>.<signature>".
func NewState(now time.Time, ttl time.Duration, secret string) string {
	expires := now.Add(ttl).Unix()
	return fmt.Sprintf("%d.%s", expires, GenerateToken(statePurpose, expires, secret))
}

// VerifyState checks the signature and expiry of a value made by NewState.
func VerifyState(state string, now time.Time, secret string) bool {
	expiresStr, sig, ok := strings.Cut(state, ".")
	if !ok {
		return false
	}
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return false
	}
	if !VerifyToken(statePurpose, expires, sig, secret) {
		return false
	}
	return now.Unix() <= expires
}
