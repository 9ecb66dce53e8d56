package cache

// A CostModel turns the outcome of an access into simulated cycles. The
// numbers are an additive estimate, not a timing model.
type CostModel struct {
	// CacheAccessCycles is charged for every read or write of the cache.
	CacheAccessCycles uint64

	// MemoryWriteCycles is charged for writing a value straight to memory.
	MemoryWriteCycles uint64

	// MemoryCyclesPerByte times the block size is charged for moving a whole
	// block between the cache and memory.
	MemoryCyclesPerByte uint64
}

// DefaultCostModel returns the cost model with 1 cycle per cache access, 100
// cycles per memory write, and 25 cycles per byte of block transfer.
func DefaultCostModel() CostModel {
	return CostModel{
		CacheAccessCycles:   1,
		MemoryWriteCycles:   100,
		MemoryCyclesPerByte: 25,
	}
}

// BlockTransfer returns the cycles to fetch or write back one block.
func (m CostModel) BlockTransfer(blockSize int) uint64 {
	return m.MemoryCyclesPerByte * uint64(blockSize)
}

// LoadHit returns the cycles of a load that hits.
func (m CostModel) LoadHit() uint64 {
	return m.CacheAccessCycles
}

// LoadMiss returns the cycles of a load that misses, excluding any write-back
// of a dirty victim.
func (m CostModel) LoadMiss(blockSize int) uint64 {
	return m.BlockTransfer(blockSize) + m.CacheAccessCycles
}

// StoreHit returns the cycles of a store that hits.
func (m CostModel) StoreHit(writeThrough bool) uint64 {
	if writeThrough {
		return m.MemoryWriteCycles + m.CacheAccessCycles
	}

	return m.CacheAccessCycles
}

// StoreMiss returns the cycles of a store that misses, excluding any
// write-back of a dirty victim.
func (m CostModel) StoreMiss(writeAllocate bool, blockSize int) uint64 {
	if writeAllocate {
		return m.BlockTransfer(blockSize) + m.CacheAccessCycles
	}

	return m.MemoryWriteCycles
}

// DirtyEviction returns the cycles of writing back a dirty victim.
func (m CostModel) DirtyEviction(blockSize int) uint64 {
	return m.BlockTransfer(blockSize)
}
