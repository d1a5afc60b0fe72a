package errors

import "errors"

var (
	// Cache errors
	ErrInvalidCapacity   = errors.New("cache capacity must be at least 1")
	ErrInvalidShardCount = errors.New("shard count must be at least 1")

	// Entry errors
	ErrKeyNotFound = errors.New("key not found")
	ErrEmptyKey    = errors.New("key must not be empty")
	ErrInvalidName = errors.New("name contains a NUL byte")

	// Config errors
	ErrInvalidConfig = errors.New("invalid config")
)
