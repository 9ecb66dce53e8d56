package cache

import "math/bits"

// An AddressDecoder splits a 32-bit address into the set index and the tag.
type AddressDecoder struct {
	offsetBits uint
	indexBits  uint
	indexMask  uint32
}

// NewAddressDecoder creates a decoder. Both arguments must be powers of two.
func NewAddressDecoder(numSets, blockSize int) AddressDecoder {
	d := AddressDecoder{
		offsetBits: log2(blockSize),
		indexBits:  log2(numSets),
	}
	d.indexMask = uint32(1)<<d.indexBits - 1

	return d
}

// OffsetBits returns the number of low-order bits selecting a byte in a block.
func (d AddressDecoder) OffsetBits() uint {
	return d.offsetBits
}

// IndexBits returns the number of bits selecting a set.
func (d AddressDecoder) IndexBits() uint {
	return d.indexBits
}

// Index returns the set that the address maps to.
func (d AddressDecoder) Index(address uint32) int {
	return int((address >> d.offsetBits) & d.indexMask)
}

// Tag returns the high-order bits that identify the block within its set.
func (d AddressDecoder) Tag(address uint32) uint32 {
	shift := d.offsetBits + d.indexBits
	if shift >= 32 {
		return 0
	}

	return address >> shift
}

// Decode returns both the set index and the tag.
func (d AddressDecoder) Decode(address uint32) (index int, tag uint32) {
	return d.Index(address), d.Tag(address)
}

// BlockAddress rebuilds the address of the first byte of the block.
func (d AddressDecoder) BlockAddress(index int, tag uint32) uint32 {
	addr := uint32(index) << d.offsetBits
	shift := d.offsetBits + d.indexBits
	if shift < 32 {
		addr |= tag << shift
	}

	return addr
}

func log2(n int) uint {
	return uint(bits.TrailingZeros(uint(n)))
}
