package cache

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var config Config

	BeforeEach(func() {
		config = Config{
			NumSets:         256,
			NumBlocksPerSet: 4,
			BlockSize:       16,
			WriteAllocate:   true,
			WriteThrough:    false,
			EvictionPolicy:  EvictionLRU,
		}
	})

	expectInvalid := func(field string) {
		err := config.Validate()

		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, ErrInvalidConfiguration)).To(BeTrue())

		var configErr *ConfigurationError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Field).To(Equal(field))
	}

	It("should accept a valid configuration", func() {
		Expect(config.Validate()).To(Succeed())
	})

	DescribeTable("should reject dimensions that are not powers of two",
		func(numSets, numBlocks, blockSize int, field string) {
			config.NumSets = numSets
			config.NumBlocksPerSet = numBlocks
			config.BlockSize = blockSize

			expectInvalid(field)
		},
		Entry("zero sets", 0, 4, 16, "numSets"),
		Entry("negative sets", -2, 4, 16, "numSets"),
		Entry("three sets", 3, 4, 16, "numSets"),
		Entry("zero blocks", 256, 0, 16, "numBlocksPerSet"),
		Entry("six blocks", 256, 6, 16, "numBlocksPerSet"),
		Entry("block size 12", 256, 4, 12, "blockSize"),
		Entry("block size 2", 256, 4, 2, "blockSize"),
		Entry("block size 1", 256, 4, 1, "blockSize"),
	)

	It("should accept the smallest block size", func() {
		config.BlockSize = 4
		Expect(config.Validate()).To(Succeed())
	})

	It("should reject no-write-allocate with write-back", func() {
		config.WriteAllocate = false
		config.WriteThrough = false

		expectInvalid("writePolicy")
	})

	It("should accept no-write-allocate with write-through", func() {
		config.WriteAllocate = false
		config.WriteThrough = true

		Expect(config.Validate()).To(Succeed())
	})

	It("should require an eviction policy for associative caches", func() {
		config.EvictionPolicy = EvictionNone

		expectInvalid("evictionPolicy")
	})

	It("should not require an eviction policy for direct-mapped caches", func() {
		config.NumBlocksPerSet = 1
		config.EvictionPolicy = EvictionNone

		Expect(config.Validate()).To(Succeed())
	})

	It("should reject unknown eviction policies", func() {
		config.EvictionPolicy = EvictionPolicy(7)

		expectInvalid("evictionPolicy")
	})

	It("should format with command-line tokens", func() {
		Expect(config.String()).To(Equal("256 4 16 write-allocate write-back lru"))

		config.NumBlocksPerSet = 1
		config.EvictionPolicy = EvictionNone
		config.WriteAllocate = false
		config.WriteThrough = true
		Expect(config.String()).To(
			Equal("256 1 16 no-write-allocate write-through"))
	})

	DescribeTable("should parse eviction policy tokens",
		func(token string, expected EvictionPolicy) {
			p, err := ParseEvictionPolicy(token)

			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(expected))
			Expect(p.String()).To(Equal(token))
		},
		Entry("lru", "lru", EvictionLRU),
		Entry("fifo", "fifo", EvictionFIFO),
	)

	It("should reject unknown eviction policy tokens", func() {
		_, err := ParseEvictionPolicy("random")

		Expect(errors.Is(err, ErrInvalidConfiguration)).To(BeTrue())
	})
})
