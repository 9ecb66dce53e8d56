package cmd

import (
	"fmt"
	"io"

	"github.com/sarchlab/cachesim/mem/cache"
)

func writeReport(w io.Writer, s cache.Statistics) error {
	_, err := fmt.Fprintf(w,
		"Total loads: %d\n"+
			"Total stores: %d\n"+
			"Load hits: %d\n"+
			"Load misses: %d\n"+
			"Store hits: %d\n"+
			"Store misses: %d\n"+
			"Total cycles: %d\n",
		s.TotalLoads(),
		s.TotalStores(),
		s.LoadHits,
		s.LoadMisses,
		s.StoreHits,
		s.StoreMisses,
		s.TotalCycles,
	)

	return err
}
