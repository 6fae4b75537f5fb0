// Package uid generates identifiers: snowflake int64 keys for database rows,
// UUIDv7 strings for object keys and correlation ids, and long random hex
// tokens for opaque secrets handed to clients.
package uid

// NumberID generates sortable numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

var (
	_ NumberID = (*Snowflake)(nil)
	_ StringID = (*UUID)(nil)
	_ StringID = (*ObjectIDGenerator)(nil)
)
