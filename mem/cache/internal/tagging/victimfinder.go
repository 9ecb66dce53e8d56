package tagging

// A VictimFinder decides which block should be evicted from a full set. It also
// keeps the ordering information that the decision is based on.
type VictimFinder interface {
	// FindVictim returns the way to be overwritten. The set must be full.
	FindVictim(set *Set) (wayID int)

	// Visit is called when the block at the way is hit.
	Visit(set *Set, wayID int)

	// Fill is called after a new block is placed at the way.
	Fill(set *Set, wayID int)
}

const infiniteRank = ^uint32(0)

// DirectMappedVictimFinder serves sets with a single way.
type DirectMappedVictimFinder struct{}

// NewDirectMappedVictimFinder creates a new DirectMappedVictimFinder.
func NewDirectMappedVictimFinder() *DirectMappedVictimFinder {
	return &DirectMappedVictimFinder{}
}

// FindVictim always returns the only way in the set.
func (e *DirectMappedVictimFinder) FindVictim(_ *Set) int {
	return 0
}

// Visit does nothing.
func (e *DirectMappedVictimFinder) Visit(_ *Set, _ int) {}

// Fill does nothing.
func (e *DirectMappedVictimFinder) Fill(_ *Set, _ int) {}

// LRUVictimFinder evicts the least recently used block.
//
// AccessSeq is kept as a dense rank inside each set. Touching a block with
// rank r moves it to rank 0 and ages every block that was more recent than r.
type LRUVictimFinder struct{}

// NewLRUVictimFinder returns a newly constructed lru evictor
func NewLRUVictimFinder() *LRUVictimFinder {
	return &LRUVictimFinder{}
}

// FindVictim returns the block with the highest rank. The lowest way wins a
// tie.
func (e *LRUVictimFinder) FindVictim(set *Set) int {
	victim := 0
	for i := 1; i < len(set.Blocks); i++ {
		if set.Blocks[i].AccessSeq > set.Blocks[victim].AccessSeq {
			victim = i
		}
	}

	return victim
}

// Visit marks the block as the most recently used one.
func (e *LRUVictimFinder) Visit(set *Set, wayID int) {
	e.promote(set, wayID, set.Blocks[wayID].AccessSeq)
}

// Fill marks a newly placed block as the most recently used one. All the other
// blocks in the set age by one.
func (e *LRUVictimFinder) Fill(set *Set, wayID int) {
	e.promote(set, wayID, infiniteRank)
}

func (e *LRUVictimFinder) promote(set *Set, wayID int, prevRank uint32) {
	for i := range set.Blocks {
		if i == wayID {
			continue
		}

		if set.Blocks[i].AccessSeq < prevRank {
			set.Blocks[i].AccessSeq++
		}
	}

	set.Blocks[wayID].AccessSeq = 0
}

// FIFOVictimFinder evicts the block that was installed first.
type FIFOVictimFinder struct{}

// NewFIFOVictimFinder creates a new FIFOVictimFinder.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return &FIFOVictimFinder{}
}

// FindVictim returns the block with the smallest LoadSeq. The lowest way wins
// a tie.
func (e *FIFOVictimFinder) FindVictim(set *Set) int {
	victim := 0
	for i := 1; i < len(set.Blocks); i++ {
		if set.Blocks[i].LoadSeq < set.Blocks[victim].LoadSeq {
			victim = i
		}
	}

	return victim
}

// Visit does nothing. Hits do not change the insertion order.
func (e *FIFOVictimFinder) Visit(_ *Set, _ int) {}

// Fill does nothing. The insertion order is carried by LoadSeq.
func (e *FIFOVictimFinder) Fill(_ *Set, _ int) {}
