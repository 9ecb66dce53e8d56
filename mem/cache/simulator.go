package cache

import (
	"fmt"

	"github.com/sarchlab/cachesim/mem/cache/internal/tagging"
	"github.com/sarchlab/cachesim/sim/hooking"
)

// Block is the tag state of a cache line.
type Block = tagging.Block

// AccessKind tells loads from stores.
type AccessKind int

// The kinds of accesses in a trace.
const (
	Load AccessKind = iota
	Store
)

func (k AccessKind) String() string {
	switch k {
	case Load:
		return "load"
	case Store:
		return "store"
	default:
		return fmt.Sprintf("AccessKind(%d)", int(k))
	}
}

// An Access is one entry of a memory trace.
type Access struct {
	Kind    AccessKind
	Address uint32
}

// AccessResult describes what the cache did for an access.
type AccessResult struct {
	// Seq is the position of the access in the trace, starting from 0.
	Seq    uint64
	Access Access
	SetID  int
	Tag    uint32

	// WayID is the way that holds the block after the access. It is -1 if the
	// block is not cached, which only happens on a no-write-allocate store miss.
	WayID int

	Hit           bool
	Evicted       bool
	DirtyEviction bool

	// Cycles is the cost charged for this access, including the write-back of
	// a dirty victim.
	Cycles uint64
}

// Hook positions of a Simulator.
var (
	// HookPosAccess is triggered after every access. The item is the
	// AccessResult.
	HookPosAccess = &hooking.HookPos{Name: "CacheAccess"}

	// HookPosEvict is triggered when a valid block is overwritten. The item is
	// the evicted Block and the detail is the AccessResult of the access that
	// caused the eviction, as known at that point.
	HookPosEvict = &hooking.HookPos{Name: "CacheEvict"}
)

// A Simulator folds a trace through a cache and counts the outcome.
type Simulator struct {
	hooking.HookableBase

	name         string
	config       Config
	cost         CostModel
	decoder      AddressDecoder
	tags         *tagging.TagArray
	victimFinder tagging.VictimFinder

	stats       Statistics
	numAccesses uint64
}

// Name returns the name of the simulator.
func (s *Simulator) Name() string {
	return s.name
}

// Config returns the configuration that the simulator is built with.
func (s *Simulator) Config() Config {
	return s.config
}

// CostModel returns the cost model used to charge cycles.
func (s *Simulator) CostModel() CostModel {
	return s.cost
}

// Stats returns a snapshot of the statistics.
func (s *Simulator) Stats() Statistics {
	return s.stats
}

// NumAccesses returns the number of accesses processed so far.
func (s *Simulator) NumAccesses() uint64 {
	return s.numAccesses
}

// Lookup returns the block that holds the address, if it is cached. It does
// not count as an access.
func (s *Simulator) Lookup(address uint32) (Block, bool) {
	setID, tag := s.decoder.Decode(address)

	wayID, found := s.tags.Lookup(setID, tag)
	if !found {
		return Block{}, false
	}

	return *s.tags.GetBlock(setID, wayID), true
}

// Reset empties the cache and clears the statistics.
func (s *Simulator) Reset() {
	s.tags.Reset()
	s.stats = Statistics{}
	s.numAccesses = 0
}

// Run processes the accesses in order and returns the statistics.
func (s *Simulator) Run(accesses []Access) Statistics {
	for _, a := range accesses {
		s.Access(a)
	}

	return s.stats
}

// Access processes a single access.
func (s *Simulator) Access(a Access) AccessResult {
	setID, tag := s.decoder.Decode(a.Address)
	wayID, hit := s.tags.Lookup(setID, tag)

	res := AccessResult{
		Seq:    s.numAccesses,
		Access: a,
		SetID:  setID,
		Tag:    tag,
		WayID:  -1,
		Hit:    hit,
	}

	switch a.Kind {
	case Load:
		s.load(&res, wayID)
	case Store:
		s.store(&res, wayID)
	default:
		panic(fmt.Sprintf("unknown access kind %d", int(a.Kind)))
	}

	s.stats.TotalCycles += res.Cycles
	s.numAccesses++

	if s.NumHooks() > 0 {
		s.InvokeHook(hooking.HookCtx{
			Domain: s,
			Pos:    HookPosAccess,
			Item:   res,
		})
	}

	return res
}

func (s *Simulator) load(res *AccessResult, wayID int) {
	if res.Hit {
		s.stats.LoadHits++
		res.WayID = wayID
		res.Cycles = s.cost.LoadHit()
		s.victimFinder.Visit(s.tags.GetSet(res.SetID), wayID)

		return
	}

	s.stats.LoadMisses++
	res.Cycles = s.cost.LoadMiss(s.config.BlockSize)
	s.allocate(res, false)
}

func (s *Simulator) store(res *AccessResult, wayID int) {
	if res.Hit {
		s.stats.StoreHits++
		res.WayID = wayID
		res.Cycles = s.cost.StoreHit(s.config.WriteThrough)

		if !s.config.WriteThrough {
			s.tags.GetBlock(res.SetID, wayID).IsDirty = true
		}

		s.victimFinder.Visit(s.tags.GetSet(res.SetID), wayID)

		return
	}

	s.stats.StoreMisses++
	res.Cycles = s.cost.StoreMiss(s.config.WriteAllocate, s.config.BlockSize)

	if s.config.WriteAllocate {
		s.allocate(res, !s.config.WriteThrough)
	}
}

// allocate places the block of the access into its set, evicting a victim if
// the set is full.
func (s *Simulator) allocate(res *AccessResult, dirty bool) {
	set := s.tags.GetSet(res.SetID)

	if !set.IsFull() {
		res.WayID = s.tags.InstallFresh(res.SetID, res.Tag, s.numAccesses, dirty)
		s.victimFinder.Fill(set, res.WayID)

		return
	}

	res.WayID = s.victimFinder.FindVictim(set)
	victim := s.tags.Replace(
		res.SetID, res.WayID, res.Tag, s.numAccesses, dirty)
	res.Evicted = true

	if !s.config.WriteThrough && victim.IsDirty {
		res.DirtyEviction = true
		res.Cycles += s.cost.DirtyEviction(s.config.BlockSize)
	}

	s.victimFinder.Fill(set, res.WayID)

	if s.NumHooks() > 0 {
		s.InvokeHook(hooking.HookCtx{
			Domain: s,
			Pos:    HookPosEvict,
			Item:   victim,
			Detail: *res,
		})
	}
}
