// Package sweep runs a trace through many cache configurations at the same
// time.
package sweep

import "github.com/sarchlab/cachesim/mem/cache"

// A Space lists the values to try for each configuration parameter. The
// configurations of a sweep are the cartesian product of the lists.
type Space struct {
	NumSets          []int
	NumBlocksPerSet  []int
	BlockSizes       []int
	WriteAllocate    []bool
	WriteThrough     []bool
	EvictionPolicies []cache.EvictionPolicy
}

// Size returns the number of combinations in the space, including the invalid
// ones.
func (s Space) Size() int {
	return len(s.NumSets) * len(s.NumBlocksPerSet) * len(s.BlockSizes) *
		len(s.WriteAllocate) * len(s.WriteThrough) * len(s.EvictionPolicies)
}

// Configs expands the space into valid configurations, in the order of the
// lists with the last parameter varying fastest. Direct-mapped caches ignore
// the eviction policy, so the combinations that only differ in the policy are
// merged. Skipped is the number of combinations that fail validation.
func (s Space) Configs() (configs []cache.Config, skipped int) {
	seen := make(map[cache.Config]bool)

	for _, numSets := range s.NumSets {
		for _, numWays := range s.NumBlocksPerSet {
			for _, blockSize := range s.BlockSizes {
				for _, wa := range s.WriteAllocate {
					for _, wt := range s.WriteThrough {
						for _, policy := range s.EvictionPolicies {
							c := cache.Config{
								NumSets:         numSets,
								NumBlocksPerSet: numWays,
								BlockSize:       blockSize,
								WriteAllocate:   wa,
								WriteThrough:    wt,
								EvictionPolicy:  policy,
							}

							if c.IsDirectMapped() {
								c.EvictionPolicy = cache.EvictionNone
							}

							if c.Validate() != nil {
								skipped++
								continue
							}

							if seen[c] {
								continue
							}

							seen[c] = true
							configs = append(configs, c)
						}
					}
				}
			}
		}
	}

	return configs, skipped
}
