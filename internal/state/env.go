package state

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time to the reducer.
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies identifiers for new entities.
type IDGenerator interface {
	NewID() string
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns time.Now in UTC.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// Env carries the non-deterministic inputs of Reduce.
type Env struct {
	Clock Clock
	IDs   IDGenerator
}

// DefaultEnv uses the wall clock and random UUIDs.
func DefaultEnv() Env {
	return Env{Clock: SystemClock{}, IDs: UUIDGenerator{}}
}
