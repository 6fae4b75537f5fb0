// Package config exposes typed access to runtime configuration.
//
// Keys use dotted paths ("database.url"). Missing keys or values that cannot
// be converted yield the zero value of the requested type.
package config

import (
	"io"
	"time"
)

// TimeConfig reads integer values scaled to a duration unit.
type TimeConfig interface {
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration
}

// NumberConfig reads numeric values.
type NumberConfig interface {
	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetUint32(key string) uint32
	GetUint64(key string) uint64
	GetFloat32(key string) float32
	GetFloat64(key string) float64
}

// Config is the read-only configuration surface handed to every module.
type Config interface {
	io.Closer
	TimeConfig
	NumberConfig

	GetBool(key string) bool
	GetString(key string) string

	// GetBinary decodes a base64 value.
	GetBinary(key string) []byte

	// GetArray splits a value of the form "a,b,c".
	GetArray(key string) []string

	// GetMap parses a value of the form "k1:v1,k2:v2".
	GetMap(key string) map[string]string
}

var _ Config = (*Viper)(nil)
