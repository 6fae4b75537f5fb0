// Package hash provides helpers for hashing and verifying secrets.
//
// Argon2id is the password hasher: a salted, memory-hard derivation whose
// output is stored and later checked with Verify. HMACSHA256 is a keyed,
// deterministic hash for lookup tokens that must be found again by value
// (refresh tokens, idempotency keys) without storing them in the clear.
package hash
