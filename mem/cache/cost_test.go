package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CostModel", func() {
	var m CostModel

	BeforeEach(func() {
		m = DefaultCostModel()
	})

	It("should charge loads", func() {
		Expect(m.LoadHit()).To(Equal(uint64(1)))
		Expect(m.LoadMiss(4)).To(Equal(uint64(101)))
		Expect(m.LoadMiss(64)).To(Equal(uint64(1601)))
	})

	It("should charge store hits", func() {
		Expect(m.StoreHit(true)).To(Equal(uint64(101)))
		Expect(m.StoreHit(false)).To(Equal(uint64(1)))
	})

	It("should charge store misses", func() {
		Expect(m.StoreMiss(true, 16)).To(Equal(uint64(401)))
		Expect(m.StoreMiss(false, 16)).To(Equal(uint64(100)))
	})

	It("should charge dirty evictions", func() {
		Expect(m.DirtyEviction(16)).To(Equal(uint64(400)))
	})
})
