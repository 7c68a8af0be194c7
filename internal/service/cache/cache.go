package cache

import "time"

// BytesCache is a minimal cache API storing raw bytes with TTL. The snapshot
// use case keeps its 5-minute market snapshot here as JSON, so the backend
// can be swapped between in-process memory and Redis by config.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
