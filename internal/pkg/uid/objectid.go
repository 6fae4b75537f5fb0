package uid

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"strings"
	"time"

	"go.uber.org/atomic"
)

// ErrStableNodeIdentityUnavailable indicates no stable node identity is available.
var ErrStableNodeIdentityUnavailable = errors.New("uid: cannot determine stable node identity (machine-id/hostname unavailable)")

// ObjectIDSize is the length of a generated id in hex characters.
const ObjectIDSize = 64

// ObjectIDGenerator produces 32-byte ids laid out as
// timestamp(6) | node(6) | pid(2) | counter(4) | random(14), hex encoded.
// The random tail makes ids unguessable, so they can serve as bearer tokens.
type ObjectIDGenerator struct {
	nodeID  [6]byte
	pid     uint16
	counter *atomic.Uint32
	now     func() time.Time
}

// NewObjectIDGenerator creates a generator keyed on /etc/machine-id or the hostname.
func NewObjectIDGenerator() (*ObjectIDGenerator, error) {
	src, err := nodeIdentity()
	if err != nil {
		return nil, err
	}

	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}

	g := &ObjectIDGenerator{
		pid:     uint16(os.Getpid()),
		counter: atomic.NewUint32(binary.BigEndian.Uint32(seed[:])),
		now:     time.Now,
	}
	sum := sha256.Sum256([]byte(src))
	copy(g.nodeID[:], sum[:6])

	return g, nil
}

func nodeIdentity() (string, error) {
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		if s := strings.TrimSpace(string(b)); s != "" {
			return s, nil
		}
	}

	if h, err := os.Hostname(); err == nil {
		if h = strings.TrimSpace(h); h != "" {
			return h, nil
		}
	}

	return "", ErrStableNodeIdentityUnavailable
}

// Generate returns a new 64 character hex id.
func (g *ObjectIDGenerator) Generate() string {
	var raw [32]byte

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(g.now().UnixMilli()))
	copy(raw[0:6], ts[2:])
	copy(raw[6:12], g.nodeID[:])
	binary.BigEndian.PutUint16(raw[12:14], g.pid)
	binary.BigEndian.PutUint32(raw[14:18], g.counter.Inc())

	if _, err := rand.Read(raw[18:]); err != nil {
		sum := sha256.Sum256(raw[:18])
		copy(raw[18:], sum[:14])
	}

	return hex.EncodeToString(raw[:])
}
