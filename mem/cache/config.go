// Package cache simulates a set-associative cache driven by a trace of loads
// and stores.
package cache

import (
	"errors"
	"fmt"
)

// EvictionPolicy selects how a victim is chosen in a full set.
type EvictionPolicy int

// The eviction policies. EvictionNone is only valid for direct-mapped caches.
const (
	EvictionNone EvictionPolicy = iota
	EvictionLRU
	EvictionFIFO
)

func (p EvictionPolicy) String() string {
	switch p {
	case EvictionNone:
		return "none"
	case EvictionLRU:
		return "lru"
	case EvictionFIFO:
		return "fifo"
	default:
		return fmt.Sprintf("EvictionPolicy(%d)", int(p))
	}
}

// ParseEvictionPolicy converts the command-line token of an eviction policy.
func ParseEvictionPolicy(token string) (EvictionPolicy, error) {
	switch token {
	case "lru":
		return EvictionLRU, nil
	case "fifo":
		return EvictionFIFO, nil
	default:
		return EvictionNone, &ConfigurationError{
			Field:  "evictionPolicy",
			Reason: fmt.Sprintf("unknown eviction policy %q", token),
		}
	}
}

// ErrInvalidConfiguration is matched by every ConfigurationError.
var ErrInvalidConfiguration = errors.New("invalid cache configuration")

// A ConfigurationError reports a cache configuration that cannot be simulated.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid cache configuration: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfiguration) true.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Config describes the geometry and the policies of a cache.
type Config struct {
	NumSets         int
	NumBlocksPerSet int
	BlockSize       int
	WriteAllocate   bool
	WriteThrough    bool
	EvictionPolicy  EvictionPolicy
}

// IsDirectMapped returns true if every set holds a single block.
func (c Config) IsDirectMapped() bool {
	return c.NumBlocksPerSet == 1
}

// String formats the configuration with the command-line tokens.
func (c Config) String() string {
	writeAllocate := "write-allocate"
	if !c.WriteAllocate {
		writeAllocate = "no-write-allocate"
	}

	writeThrough := "write-through"
	if !c.WriteThrough {
		writeThrough = "write-back"
	}

	s := fmt.Sprintf("%d %d %d %s %s",
		c.NumSets, c.NumBlocksPerSet, c.BlockSize, writeAllocate, writeThrough)
	if c.EvictionPolicy != EvictionNone {
		s += " " + c.EvictionPolicy.String()
	}

	return s
}

// Validate checks that the configuration can be simulated.
func (c Config) Validate() error {
	if !isPowerOfTwo(c.NumSets) {
		return &ConfigurationError{
			Field:  "numSets",
			Reason: fmt.Sprintf("%d is not a positive power of two", c.NumSets),
		}
	}

	if !isPowerOfTwo(c.NumBlocksPerSet) {
		return &ConfigurationError{
			Field: "numBlocksPerSet",
			Reason: fmt.Sprintf("%d is not a positive power of two",
				c.NumBlocksPerSet),
		}
	}

	if !isPowerOfTwo(c.BlockSize) || c.BlockSize < 4 {
		return &ConfigurationError{
			Field: "blockSize",
			Reason: fmt.Sprintf("%d is not a power of two of at least 4",
				c.BlockSize),
		}
	}

	if !c.WriteAllocate && !c.WriteThrough {
		return &ConfigurationError{
			Field:  "writePolicy",
			Reason: "no-write-allocate cannot be combined with write-back",
		}
	}

	return c.validateEvictionPolicy()
}

func (c Config) validateEvictionPolicy() error {
	switch c.EvictionPolicy {
	case EvictionNone:
		if !c.IsDirectMapped() {
			return &ConfigurationError{
				Field:  "evictionPolicy",
				Reason: "an eviction policy is required when a set has more than one block",
			}
		}
	case EvictionLRU, EvictionFIFO:
	default:
		return &ConfigurationError{
			Field:  "evictionPolicy",
			Reason: fmt.Sprintf("unknown eviction policy %d", int(c.EvictionPolicy)),
		}
	}

	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
