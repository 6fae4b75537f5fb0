package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost parameters. They are not stored alongside the digest, so
// changing any of them invalidates every credential hashed before the change.
const (
	Argon2idSaltSize    = 16
	Argon2idKeySize     = 32
	Argon2idStoredSize  = Argon2idSaltSize + Argon2idKeySize
	Argon2idIterations  = 4
	Argon2idMemory      = 64 * 1024 // KiB
	Argon2idParallelism = 4
)

// ErrRandomSourceUnavailable is returned when a salt cannot be read from the
// random source.
var ErrRandomSourceUnavailable = errors.New("hash: random source unavailable")

// Argon2id implements the Hash interface using Argon2id.
//
// The stored form is base64(salt || digest), 48 bytes before encoding. Each
// call to Hash or Verify allocates Argon2idMemory KiB, callers that run many
// derivations at once must bound concurrency themselves.
type Argon2id struct {
	rand io.Reader
}

// NewArgon2id returns an Argon2id hasher reading salts from crypto/rand.
func NewArgon2id() *Argon2id {
	return &Argon2id{rand: rand.Reader}
}

// Hash derives a fresh salted digest of str and returns it base64 encoded.
func (a *Argon2id) Hash(str string) ([]byte, error) {
	src := a.rand
	if src == nil {
		src = rand.Reader
	}

	stored := make([]byte, Argon2idStoredSize)
	if _, err := io.ReadFull(src, stored[:Argon2idSaltSize]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSourceUnavailable, err)
	}

	copy(stored[Argon2idSaltSize:], derive(str, stored[:Argon2idSaltSize]))

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(stored)))
	base64.StdEncoding.Encode(encoded, stored)

	return encoded, nil
}

// Verify reports whether str matches the stored value. Malformed stored values
// and mismatches both yield false.
func (a *Argon2id) Verify(hashed, str string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	stored, err := base64.StdEncoding.DecodeString(hashed)
	if err != nil || len(stored) != Argon2idStoredSize {
		return false
	}

	salt := stored[:Argon2idSaltSize]
	expected := stored[Argon2idSaltSize:]

	return equal(expected, derive(str, salt))
}

func derive(str string, salt []byte) []byte {
	return argon2.IDKey([]byte(str), salt, Argon2idIterations, Argon2idMemory, Argon2idParallelism, Argon2idKeySize)
}

// equal compares two digests of the same length without short-circuiting.
func equal(expected, actual []byte) bool {
	if len(expected) != Argon2idKeySize || len(actual) != Argon2idKeySize {
		return false
	}

	return subtle.ConstantTimeCompare(expected, actual) == 1
}
