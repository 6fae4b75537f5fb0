package hash

// Hash hashes secrets and verifies plaintext against a previous result.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}

var (
	_ Hash = (*Argon2id)(nil)
	_ Hash = (*HMACSHA256)(nil)
)
