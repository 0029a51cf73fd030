// Package cache models a single-level cache and replays memory accesses
// against it.
package cache

import "math/bits"

// Geometry splits addresses into tag and index fields for a region of the
// cache holding Lines lines. Lines must be a power of two.
type Geometry struct {
	Lines     uint32
	IndexBits uint
	IndexMask uint32
	TagMask   uint32
}

// NewGeometry creates the address geometry for a region with the given number
// of lines.
func NewGeometry(lines uint32) Geometry {
	indexBits := uint(bits.TrailingZeros32(lines))
	indexMask := (lines - 1) << OffsetBits

	return Geometry{
		Lines:     lines,
		IndexBits: indexBits,
		IndexMask: indexMask,
		TagMask:   ^uint32(0) &^ indexMask &^ (BlockSize - 1),
	}
}

// DirectMapped returns the tag and the line index of an address in a
// direct-mapped region.
func (g Geometry) DirectMapped(addr uint32) (tag, index uint32) {
	index = (addr & g.IndexMask) >> OffsetBits
	tag = (addr & g.TagMask) >> (OffsetBits + g.IndexBits)

	return tag, index
}

// FullyAssociative returns the tag of an address in a fully-associative
// region. Every line is a candidate, so there is no index.
func (g Geometry) FullyAssociative(addr uint32) (tag uint32) {
	return addr >> OffsetBits
}
