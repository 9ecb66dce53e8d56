package cache

// Statistics holds the counters of a simulation run.
type Statistics struct {
	LoadHits    uint64
	LoadMisses  uint64
	StoreHits   uint64
	StoreMisses uint64
	TotalCycles uint64
}

// TotalLoads returns the number of loads processed.
func (s Statistics) TotalLoads() uint64 {
	return s.LoadHits + s.LoadMisses
}

// TotalStores returns the number of stores processed.
func (s Statistics) TotalStores() uint64 {
	return s.StoreHits + s.StoreMisses
}

// TotalAccesses returns the number of loads and stores processed.
func (s Statistics) TotalAccesses() uint64 {
	return s.TotalLoads() + s.TotalStores()
}

// HitRate returns the fraction of accesses that hit. It is 0 before any
// access.
func (s Statistics) HitRate() float64 {
	total := s.TotalAccesses()
	if total == 0 {
		return 0
	}

	return float64(s.LoadHits+s.StoreHits) / float64(total)
}
