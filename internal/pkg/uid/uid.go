// Package uid provides unique identifier generators: UUIDv7 strings,
// snowflake numbers, and 32-byte object IDs.
package uid

// NumberID generates unique numeric identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
