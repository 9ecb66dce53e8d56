// Package trace reads memory traces and traces what a cache does with them.
package trace

import (
	"fmt"
	"log"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/sim/hooking"
)

// Table names used by the DBTracer.
const (
	AccessTableName = "cache_access"
	EvictTableName  = "cache_evict"
)

// AccessEntry is a row of the access table.
type AccessEntry struct {
	Cache         string
	Seq           uint64
	Kind          string
	Address       uint32
	SetID         int
	WayID         int
	Tag           uint32
	Hit           bool
	Evicted       bool
	DirtyEviction bool
	Cycles        uint64
}

// EvictEntry is a row of the eviction table.
type EvictEntry struct {
	Cache        string
	Seq          uint64
	SetID        int
	WayID        int
	Tag          uint32
	BlockAddress uint32
	IsDirty      bool
	LoadSeq      uint64
}

type named interface {
	Name() string
}

func domainName(ctx hooking.HookCtx) string {
	if n, ok := ctx.Domain.(named); ok {
		return n.Name()
	}

	return ""
}

// A tracer is a hook that writes the accesses and evictions of a cache into a
// log.
type tracer struct {
	logger *log.Logger
}

// NewTracer creates a hook that logs every access and eviction.
func NewTracer(logger *log.Logger) hooking.Hook {
	return &tracer{logger: logger}
}

func (t *tracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case cache.HookPosAccess:
		res := ctx.Item.(cache.AccessResult)
		t.logger.Printf(
			"access, %s, %d, %s, 0x%08x, %d, %d, %s, %d\n",
			domainName(ctx),
			res.Seq,
			res.Access.Kind,
			res.Access.Address,
			res.SetID,
			res.WayID,
			hitOrMiss(res.Hit),
			res.Cycles,
		)
	case cache.HookPosEvict:
		victim := ctx.Item.(cache.Block)
		t.logger.Printf(
			"evict, %s, %d, %d, 0x%x, dirty=%t\n",
			domainName(ctx),
			victim.SetID,
			victim.WayID,
			victim.Tag,
			victim.IsDirty,
		)
	}
}

func hitOrMiss(hit bool) string {
	if hit {
		return "hit"
	}

	return "miss"
}

// A DBTracer is a hook that records the accesses and evictions of a cache into
// a database using the data recorder.
type DBTracer struct {
	dataRecorder datarecording.DataRecorder
}

// NewDBTracer creates a DBTracer and the tables it writes to.
func NewDBTracer(dataRecorder datarecording.DataRecorder) *DBTracer {
	t := &DBTracer{dataRecorder: dataRecorder}

	dataRecorder.CreateTable(AccessTableName, AccessEntry{})
	dataRecorder.CreateTable(EvictTableName, EvictEntry{})

	return t
}

// Func records the item of the hook context.
func (t *DBTracer) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case cache.HookPosAccess:
		t.recordAccess(ctx)
	case cache.HookPosEvict:
		t.recordEvict(ctx)
	}
}

func (t *DBTracer) recordAccess(ctx hooking.HookCtx) {
	res := ctx.Item.(cache.AccessResult)

	t.dataRecorder.InsertData(AccessTableName, AccessEntry{
		Cache:         domainName(ctx),
		Seq:           res.Seq,
		Kind:          res.Access.Kind.String(),
		Address:       res.Access.Address,
		SetID:         res.SetID,
		WayID:         res.WayID,
		Tag:           res.Tag,
		Hit:           res.Hit,
		Evicted:       res.Evicted,
		DirtyEviction: res.DirtyEviction,
		Cycles:        res.Cycles,
	})
}

func (t *DBTracer) recordEvict(ctx hooking.HookCtx) {
	victim := ctx.Item.(cache.Block)

	res, ok := ctx.Detail.(cache.AccessResult)
	if !ok {
		panic(fmt.Sprintf("eviction detail must be an AccessResult, got %T",
			ctx.Detail))
	}

	var blockAddress uint32
	if sim, ok := ctx.Domain.(*cache.Simulator); ok {
		config := sim.Config()
		blockAddress = cache.NewAddressDecoder(config.NumSets, config.BlockSize).
			BlockAddress(victim.SetID, victim.Tag)
	}

	t.dataRecorder.InsertData(EvictTableName, EvictEntry{
		Cache:        domainName(ctx),
		Seq:          res.Seq,
		SetID:        victim.SetID,
		WayID:        victim.WayID,
		Tag:          victim.Tag,
		BlockAddress: blockAddress,
		IsDirty:      victim.IsDirty,
		LoadSeq:      victim.LoadSeq,
	})
}
