package hooking

import "sync"

// PosCounter is a hook that counts how many times each hook position is
// triggered.
type PosCounter struct {
	lock sync.Mutex

	posNames []string
	count    map[string]uint64
}

// NewPosCounter creates a new PosCounter
func NewPosCounter() *PosCounter {
	return &PosCounter{
		count: make(map[string]uint64),
	}
}

// Func counts the position of the context.
func (c *PosCounter) Func(ctx HookCtx) {
	c.lock.Lock()
	defer c.lock.Unlock()

	name := ctx.Pos.Name

	_, ok := c.count[name]
	if !ok {
		c.posNames = append(c.posNames, name)
	}

	c.count[name]++
}

// PosNames returns the position names seen so far, in the order they first
// appeared.
func (c *PosCounter) PosNames() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	names := make([]string, len(c.posNames))
	copy(names, c.posNames)

	return names
}

// Count returns the number of times the named position is triggered.
func (c *PosCounter) Count(posName string) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.count[posName]
}
