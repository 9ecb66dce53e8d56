package sweep

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/cachesim/mem/cache"
)

var _ = Describe("Space", func() {
	var space Space

	BeforeEach(func() {
		space = Space{
			NumSets:         []int{1, 3},
			NumBlocksPerSet: []int{1, 2},
			BlockSizes:      []int{16},
			WriteAllocate:   []bool{true, false},
			WriteThrough:    []bool{false, true},
			EvictionPolicies: []cache.EvictionPolicy{
				cache.EvictionLRU,
				cache.EvictionFIFO,
			},
		}
	})

	It("should count all the combinations", func() {
		Expect(space.Size()).To(Equal(32))
	})

	It("should skip invalid combinations", func() {
		configs, skipped := space.Configs()

		Expect(skipped).To(Equal(20))
		Expect(configs).To(HaveLen(9))

		for _, c := range configs {
			Expect(c.Validate()).To(Succeed())
		}
	})

	It("should merge direct-mapped caches that only differ in policy", func() {
		configs, _ := space.Configs()

		Expect(configs[:3]).To(Equal([]cache.Config{
			{
				NumSets: 1, NumBlocksPerSet: 1, BlockSize: 16,
				WriteAllocate: true, WriteThrough: false,
				EvictionPolicy: cache.EvictionNone,
			},
			{
				NumSets: 1, NumBlocksPerSet: 1, BlockSize: 16,
				WriteAllocate: true, WriteThrough: true,
				EvictionPolicy: cache.EvictionNone,
			},
			{
				NumSets: 1, NumBlocksPerSet: 1, BlockSize: 16,
				WriteAllocate: false, WriteThrough: true,
				EvictionPolicy: cache.EvictionNone,
			},
		}))
	})

	It("should vary the eviction policy fastest", func() {
		configs, _ := space.Configs()

		Expect(configs[3].EvictionPolicy).To(Equal(cache.EvictionLRU))
		Expect(configs[4].EvictionPolicy).To(Equal(cache.EvictionFIFO))
		Expect(configs[3].WriteThrough).To(Equal(configs[4].WriteThrough))
	})

	It("should be empty if a list is empty", func() {
		space.BlockSizes = nil

		configs, skipped := space.Configs()

		Expect(space.Size()).To(Equal(0))
		Expect(configs).To(BeEmpty())
		Expect(skipped).To(Equal(0))
	})
})
