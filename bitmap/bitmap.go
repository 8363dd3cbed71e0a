// Package bitmap provides a dense, index-addressed bit vector used by
// the file system core to track free inodes and free data blocks. It
// is a thin wrapper around github.com/boljen/go-bitmap, adding the
// first-fit linear scan that Create and Write need to pick the
// lowest-numbered free slot.
package bitmap

import (
	gobitmap "github.com/boljen/go-bitmap"
)

// Bitmap is a packed array of single-bit cells addressed by a
// non-negative integer index.
type Bitmap struct {
	bits gobitmap.Bitmap
	n    int
}

// New allocates storage for at least n bits. Initial contents are
// whatever the zero value of the underlying storage is; callers must
// initialize every bit they rely on explicitly.
func New(n int) *Bitmap {
	return &Bitmap{bits: gobitmap.New(n), n: n}
}

// Len returns the number of addressable bits.
func (b *Bitmap) Len() int {
	return b.n
}

// Test returns the bit at index i.
func (b *Bitmap) Test(i int) bool {
	return b.bits.Get(i)
}

// Set idempotently writes bit v at index i.
func (b *Bitmap) Set(i int, v bool) {
	b.bits.Set(i, v)
}

// FindFirst returns the lowest index in [lo, hi) whose bit equals v. If
// no such index exists, ok is false.
func (b *Bitmap) FindFirst(v bool, lo, hi int) (index int, ok bool) {
	if lo < 0 {
		lo = 0
	}
	if hi > b.n {
		hi = b.n
	}
	for i := lo; i < hi; i++ {
		if b.bits.Get(i) == v {
			return i, true
		}
	}
	return 0, false
}

// Dump renders the bitmap as a string of '0'/'1' characters, one per
// bit, for diagnostic output.
func (b *Bitmap) Dump() string {
	buf := make([]byte, b.n)
	for i := 0; i < b.n; i++ {
		if b.bits.Get(i) {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
