// Package block interprets a raw 4 KiB disk block as one of the typed
// views SimpleFS needs: the superblock, a block of inode records, or an
// indirect pointer block. This replaces the C original's single union
// overlaying all three on one buffer: binary.Read/Write decode each
// view on demand from a byte slice instead of aliasing storage.
//
// All multi-byte fields are signed 32-bit integers, written in
// little-endian order. That's the byte order of every architecture
// this module is expected to run on, and it is also what the original
// emulator's host produced, so images stay bit-compatible.
package block

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/noxer/bytewriter"
)

// Size is the fixed size of a disk block, in bytes.
const Size = 4096

// Magic is the superblock sentinel value. Its bit pattern is
// 0xF0F03410; as a signed 32-bit integer that's the negative value
// below.
const Magic int32 = -252693488

// DirectPointers is the number of direct data-block pointers stored
// inline in every inode.
const DirectPointers = 5

// InodeSize is the on-disk size of one inode record, in bytes:
// isvalid(4) + size(4) + direct(5*4) + indirect(4).
const InodeSize = 32

// InodesPerBlock is the number of inode records packed into one block.
const InodesPerBlock = Size / InodeSize

// PointersPerBlock is the number of 4-byte block numbers packed into
// one indirect block.
const PointersPerBlock = Size / 4

// MaxDirectBytes is the number of logical bytes an inode can address
// using only its direct pointers.
const MaxDirectBytes = DirectPointers * Size

// MaxFileBytes is the largest logical size an inode can represent using
// its direct pointers plus one indirect block.
const MaxFileBytes = MaxDirectBytes + PointersPerBlock*Size

// Superblock is the decoded form of block 0.
type Superblock struct {
	Magic        int32
	NBlocks      int32
	NInodeBlocks int32
	NInodes      int32
}

// Inode is the decoded form of one 32-byte inode record.
type Inode struct {
	IsValid  int32
	Size     int32
	Direct   [DirectPointers]int32
	Indirect int32
}

// CeilDiv returns ceil(a / b) for non-negative a and positive b.
func CeilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// EncodeSuperblock renders sb into a full Size-byte block, zero-padded
// after the four fields.
func EncodeSuperblock(sb Superblock) []byte {
	buf := make([]byte, Size)
	w := bytewriter.New(buf)
	binary.Write(w, binary.LittleEndian, &sb)
	return buf
}

// DecodeSuperblock reads the four superblock fields out of a
// Size-byte block. The remaining bytes are ignored.
func DecodeSuperblock(buf []byte) (Superblock, error) {
	if len(buf) != Size {
		return Superblock{}, fmt.Errorf("superblock buffer must be %d bytes, got %d", Size, len(buf))
	}
	var sb Superblock
	r := bytes.NewReader(buf)
	if err := binary.Read(r, binary.LittleEndian, &sb); err != nil {
		return Superblock{}, err
	}
	return sb, nil
}

// EncodeInodeBlock renders InodesPerBlock inode records into a full
// Size-byte block.
func EncodeInodeBlock(inodes [InodesPerBlock]Inode) []byte {
	buf := make([]byte, Size)
	w := bytewriter.New(buf)
	for i := range inodes {
		binary.Write(w, binary.LittleEndian, &inodes[i])
	}
	return buf
}

// DecodeInodeBlock reads InodesPerBlock inode records out of a
// Size-byte block.
func DecodeInodeBlock(buf []byte) ([InodesPerBlock]Inode, error) {
	var inodes [InodesPerBlock]Inode
	if len(buf) != Size {
		return inodes, fmt.Errorf("inode block buffer must be %d bytes, got %d", Size, len(buf))
	}
	r := bytes.NewReader(buf)
	for i := range inodes {
		if err := binary.Read(r, binary.LittleEndian, &inodes[i]); err != nil {
			return inodes, err
		}
	}
	return inodes, nil
}

// EncodeIndirectBlock renders PointersPerBlock block numbers into a
// full Size-byte block.
func EncodeIndirectBlock(pointers [PointersPerBlock]int32) []byte {
	buf := make([]byte, Size)
	w := bytewriter.New(buf)
	binary.Write(w, binary.LittleEndian, &pointers)
	return buf
}

// DecodeIndirectBlock reads PointersPerBlock block numbers out of a
// Size-byte block.
func DecodeIndirectBlock(buf []byte) ([PointersPerBlock]int32, error) {
	var pointers [PointersPerBlock]int32
	if len(buf) != Size {
		return pointers, fmt.Errorf("indirect block buffer must be %d bytes, got %d", Size, len(buf))
	}
	r := bytes.NewReader(buf)
	if err := binary.Read(r, binary.LittleEndian, &pointers); err != nil {
		return pointers, err
	}
	return pointers, nil
}

// DirectSlotsUsed returns the number of direct pointer slots that
// cover a file of the given size, capped at DirectPointers.
func DirectSlotsUsed(size int) int {
	blocks := CeilDiv(size, Size)
	if blocks > DirectPointers {
		return DirectPointers
	}
	return blocks
}

// UsesIndirect reports whether a file of the given size requires the
// indirect block.
func UsesIndirect(size int) bool {
	return size > MaxDirectBytes
}
