package config

import (
	"io"
	"time"
)

// TimeConfig defines helpers for retrieving time-based configuration values.
type TimeConfig interface {
	// GetSecond retrieves the value associated with key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the value associated with key as minutes.
	GetMinute(key string) time.Duration

	// GetHour retrieves the value associated with key as hours.
	GetHour(key string) time.Duration

	// GetDay retrieves the value associated with key as days (24h).
	GetDay(key string) time.Duration
}

// Config defines the methods for retrieving configuration values of various
// types. Implementations handle retrieval and type conversion, returning zero
// values when a key is absent or cannot be converted.
type Config interface {
	io.Closer
	TimeConfig

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value associated with key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the value associated with key as an int64.
	GetInt64(key string) int64

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetBinary retrieves the value associated with key as a byte slice.
	// The configuration value is stored base64 encoded.
	GetBinary(key string) []byte

	// GetArray retrieves the value associated with key as a string slice.
	// The configuration value is stored as <element1>,<element2>,...
	GetArray(key string) []string
}
