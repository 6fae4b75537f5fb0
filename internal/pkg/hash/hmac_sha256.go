package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// HMACSHA256 derives deterministic lookup keys, such as refresh token digests
// and registration locks, from values that are never stored in clear.
type HMACSHA256 struct {
	key []byte
}

func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{key: []byte(secret)}
}

// Hash returns the lowercase hex digest of str. It never fails.
func (h *HMACSHA256) Hash(str string) ([]byte, error) {
	return h.sum(str), nil
}

// Verify reports in constant time whether hashed is the digest of str.
func (h *HMACSHA256) Verify(hashed, str string) bool {
	return hmac.Equal([]byte(hashed), h.sum(str))
}

func (h *HMACSHA256) sum(str string) []byte {
	mac := hmac.New(sha256.New, h.key)
	_, _ = io.WriteString(mac, str)
	return hex.AppendEncode(nil, mac.Sum(nil))
}
