package cache

import (
	"fmt"

	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
)

// Builder can build cache simulators.
type Builder struct {
	config    Config
	costModel CostModel
}

// MakeBuilder returns a Builder with a 256-set, 4-way, 16-byte-block,
// write-allocate, write-back, LRU cache.
func MakeBuilder() Builder {
	return Builder{
		config: Config{
			NumSets:         256,
			NumBlocksPerSet: 4,
			BlockSize:       16,
			WriteAllocate:   true,
			WriteThrough:    false,
			EvictionPolicy:  EvictionLRU,
		},
		costModel: DefaultCostModel(),
	}
}

// WithConfig replaces the whole configuration.
func (b Builder) WithConfig(config Config) Builder {
	b.config = config
	return b
}

// WithNumSets sets the number of sets. Use 1 for fully associative caches.
func (b Builder) WithNumSets(n int) Builder {
	b.config.NumSets = n
	return b
}

// WithNumBlocksPerSet sets the associativity. Use 1 for direct-mapped caches.
func (b Builder) WithNumBlocksPerSet(n int) Builder {
	b.config.NumBlocksPerSet = n
	return b
}

// WithBlockSize sets the number of bytes in a block.
func (b Builder) WithBlockSize(n int) Builder {
	b.config.BlockSize = n
	return b
}

// WithWriteAllocate sets if a store miss brings the block into the cache.
func (b Builder) WithWriteAllocate(writeAllocate bool) Builder {
	b.config.WriteAllocate = writeAllocate
	return b
}

// WithWriteThrough sets if stores are written to memory immediately. Stores
// are deferred until eviction otherwise.
func (b Builder) WithWriteThrough(writeThrough bool) Builder {
	b.config.WriteThrough = writeThrough
	return b
}

// WithEvictionPolicy sets the eviction policy.
func (b Builder) WithEvictionPolicy(p EvictionPolicy) Builder {
	b.config.EvictionPolicy = p
	return b
}

// WithCostModel sets the cost model used to estimate cycles.
func (b Builder) WithCostModel(m CostModel) Builder {
	b.costModel = m
	return b
}

// Build validates the configuration and creates a new simulator.
func (b Builder) Build(name string) (*Simulator, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		name:    name,
		config:  b.config,
		cost:    b.costModel,
		decoder: NewAddressDecoder(b.config.NumSets, b.config.BlockSize),
		tags: tagging.NewTagArray(
			b.config.NumSets,
			b.config.NumBlocksPerSet,
			b.config.BlockSize,
		),
		victimFinder: b.createVictimFinder(),
	}

	return s, nil
}

func (b Builder) createVictimFinder() tagging.VictimFinder {
	if b.config.IsDirectMapped() {
		return tagging.NewDirectMappedVictimFinder()
	}

	switch b.config.EvictionPolicy {
	case EvictionLRU:
		return tagging.NewLRUVictimFinder()
	case EvictionFIFO:
		return tagging.NewFIFOVictimFinder()
	default:
		panic(fmt.Sprintf("unknown eviction policy: %s",
			b.config.EvictionPolicy))
	}
}
