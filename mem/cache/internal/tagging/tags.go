// Package tagging keeps the tag state of a set-associative cache.
package tagging

// A Block of a cache is the information that is associated with a cache line.
type Block struct {
	Tag     uint32
	SetID   int
	WayID   int
	IsValid bool
	IsDirty bool

	// LoadSeq is the value of the global access counter when the block was
	// installed. It is never updated afterwards.
	LoadSeq uint64

	// AccessSeq is the recency rank of the block within its set. 0 is the most
	// recently touched block. Only maintained by the LRU victim finder.
	AccessSeq uint32
}

// A Set is a list of blocks where a certain piece memory can be stored at.
//
// Blocks are appended when the set still has room and are overwritten in place
// afterwards. TagToWay only holds the tags of the occupied ways.
type Set struct {
	Blocks   []Block
	TagToWay map[uint32]int

	numWays int
}

// IsFull returns true if every way of the set holds a block.
func (s *Set) IsFull() bool {
	return len(s.Blocks) >= s.numWays
}

// NumWays returns the capacity of the set.
func (s *Set) NumWays() int {
	return s.numWays
}

// A TagArray owns all the sets of a cache.
type TagArray struct {
	NumSets   int
	NumWays   int
	BlockSize int
	Sets      []Set
}

// NewTagArray creates an empty tag array.
func NewTagArray(numSets, numWays, blockSize int) *TagArray {
	t := &TagArray{
		NumSets:   numSets,
		NumWays:   numWays,
		BlockSize: blockSize,
	}

	t.Reset()

	return t
}

// TotalSize returns the maximum number of bytes can be stored in the cache
func (t *TagArray) TotalSize() uint64 {
	return uint64(t.NumSets) * uint64(t.NumWays) * uint64(t.BlockSize)
}

// GetSet returns the set with the given index.
func (t *TagArray) GetSet(setID int) *Set {
	return &t.Sets[setID]
}

// GetBlock returns the block stored at the given set and way.
func (t *TagArray) GetBlock(setID, wayID int) *Block {
	return &t.Sets[setID].Blocks[wayID]
}

// Lookup finds the way that holds the tag in the given set.
func (t *TagArray) Lookup(setID int, tag uint32) (wayID int, found bool) {
	wayID, found = t.Sets[setID].TagToWay[tag]
	return wayID, found
}

// InstallFresh appends a new block to a set that still has a free way and
// returns the way it occupies.
func (t *TagArray) InstallFresh(
	setID int,
	tag uint32,
	loadSeq uint64,
	dirty bool,
) (wayID int) {
	set := &t.Sets[setID]
	if set.IsFull() {
		panic("installing into a full set")
	}

	wayID = len(set.Blocks)
	set.Blocks = append(set.Blocks, Block{
		Tag:     tag,
		SetID:   setID,
		WayID:   wayID,
		IsValid: true,
		IsDirty: dirty,
		LoadSeq: loadSeq,
	})
	set.TagToWay[tag] = wayID

	return wayID
}

// Replace overwrites the block at the given way with a new tag. The content of
// the block before the replacement is returned.
func (t *TagArray) Replace(
	setID, wayID int,
	tag uint32,
	loadSeq uint64,
	dirty bool,
) (victim Block) {
	set := &t.Sets[setID]
	block := &set.Blocks[wayID]
	victim = *block

	delete(set.TagToWay, victim.Tag)
	set.TagToWay[tag] = wayID

	block.Tag = tag
	block.IsValid = true
	block.IsDirty = dirty
	block.LoadSeq = loadSeq
	block.AccessSeq = 0

	return victim
}

// Reset drops every block in the tag array.
func (t *TagArray) Reset() {
	t.Sets = make([]Set, t.NumSets)
	for i := range t.Sets {
		t.Sets[i] = Set{
			Blocks:   make([]Block, 0, t.NumWays),
			TagToWay: make(map[uint32]int, t.NumWays),
			numWays:  t.NumWays,
		}
	}
}
