package sweep

import "github.com/sarchlab/cachesim/mem/cache"

// RunTableName is the table that holds one summary row per run.
const RunTableName = "run_summary"

// RunEntry is the summary of a run as stored by the data recorder.
type RunEntry struct {
	Name            string
	NumSets         int
	NumBlocksPerSet int
	BlockSize       int
	WriteAllocate   bool
	WriteThrough    bool
	EvictionPolicy  string
	TotalLoads      uint64
	TotalStores     uint64
	LoadHits        uint64
	LoadMisses      uint64
	StoreHits       uint64
	StoreMisses     uint64
	TotalCycles     uint64
	HitRate         float64
}

// NewRunEntry flattens a configuration and its statistics.
func NewRunEntry(name string, c cache.Config, s cache.Statistics) RunEntry {
	return RunEntry{
		Name:            name,
		NumSets:         c.NumSets,
		NumBlocksPerSet: c.NumBlocksPerSet,
		BlockSize:       c.BlockSize,
		WriteAllocate:   c.WriteAllocate,
		WriteThrough:    c.WriteThrough,
		EvictionPolicy:  c.EvictionPolicy.String(),
		TotalLoads:      s.TotalLoads(),
		TotalStores:     s.TotalStores(),
		LoadHits:        s.LoadHits,
		LoadMisses:      s.LoadMisses,
		StoreHits:       s.StoreHits,
		StoreMisses:     s.StoreMisses,
		TotalCycles:     s.TotalCycles,
		HitRate:         s.HitRate(),
	}
}
