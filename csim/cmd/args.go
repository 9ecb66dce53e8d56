package cmd

import (
	"fmt"
	"strconv"

	"github.com/sarchlab/cachesim/mem/cache"
)

func parseDimension(field, token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, &cache.ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("%q is not an integer", token),
		}
	}

	return n, nil
}

func parseWriteAllocate(token string) (bool, error) {
	switch token {
	case "write-allocate":
		return true, nil
	case "no-write-allocate":
		return false, nil
	default:
		return false, &cache.ConfigurationError{
			Field:  "writeAllocate",
			Reason: fmt.Sprintf("unknown token %q", token),
		}
	}
}

func parseWriteThrough(token string) (bool, error) {
	switch token {
	case "write-through":
		return true, nil
	case "write-back":
		return false, nil
	default:
		return false, &cache.ConfigurationError{
			Field:  "writeThrough",
			Reason: fmt.Sprintf("unknown token %q", token),
		}
	}
}

// parseConfig converts the positional arguments into a validated
// configuration. The eviction token may be left out for direct-mapped caches,
// and is ignored if given for one.
func parseConfig(args []string) (cache.Config, error) {
	if len(args) < 5 || len(args) > 6 {
		return cache.Config{}, fmt.Errorf(
			"expected 5 or 6 arguments, got %d", len(args))
	}

	var (
		c   cache.Config
		err error
	)

	if c.NumSets, err = parseDimension("numSets", args[0]); err != nil {
		return cache.Config{}, err
	}

	if c.NumBlocksPerSet, err = parseDimension("numBlocksPerSet", args[1]); err != nil {
		return cache.Config{}, err
	}

	if c.BlockSize, err = parseDimension("blockSize", args[2]); err != nil {
		return cache.Config{}, err
	}

	if c.WriteAllocate, err = parseWriteAllocate(args[3]); err != nil {
		return cache.Config{}, err
	}

	if c.WriteThrough, err = parseWriteThrough(args[4]); err != nil {
		return cache.Config{}, err
	}

	if len(args) == 6 {
		c.EvictionPolicy, err = cache.ParseEvictionPolicy(args[5])
		if err != nil {
			return cache.Config{}, err
		}
	}

	if c.IsDirectMapped() {
		c.EvictionPolicy = cache.EvictionNone
	}

	if err := c.Validate(); err != nil {
		return cache.Config{}, err
	}

	return c, nil
}
