// Package inodetable provides a cursor for scanning the on-disk inode
// table one inumber at a time, decoding only the table block the
// cursor currently sits in and reusing it across consecutive inumbers
// in the same block.
package inodetable

import (
	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/disk"
)

// Walker scans inumbers in increasing order, decoding each 128-inode
// table block at most once as the cursor crosses into it. It holds no
// package-level state; each Walker is independent, so Mount, Debug, and
// Defragment can each use their own.
type Walker struct {
	device  disk.BlockDevice
	ninodes int

	cursor int

	cachedBlockIdx int
	cachedBlock    [block.InodesPerBlock]block.Inode
	loaded         bool
}

// NewWalker builds a Walker over a table of ninodes inodes, starting
// from inumber 1 (inode 0 is always reserved).
func NewWalker(device disk.BlockDevice, ninodes int) *Walker {
	return &Walker{
		device:         device,
		ninodes:        ninodes,
		cursor:         1,
		cachedBlockIdx: -1,
	}
}

// Seed repositions the cursor to start at inumber on the next call to
// Next.
func (w *Walker) Seed(inumber int) {
	w.cursor = inumber
}

// Next returns the next inumber/inode pair in order, loading a fresh
// table block only when the cursor crosses into one not already
// cached. ok is false once the cursor reaches ninodes.
func (w *Walker) Next() (inumber int, inode block.Inode, ok bool, err error) {
	if w.cursor >= w.ninodes {
		return 0, block.Inode{}, false, nil
	}

	inumber = w.cursor
	tableBlockIdx := inumber / block.InodesPerBlock
	slot := inumber % block.InodesPerBlock

	if !w.loaded || tableBlockIdx != w.cachedBlockIdx {
		buf := make([]byte, disk.BlockSize)
		if err := w.device.ReadBlock(1+tableBlockIdx, buf); err != nil {
			return 0, block.Inode{}, false, err
		}
		decoded, err := block.DecodeInodeBlock(buf)
		if err != nil {
			return 0, block.Inode{}, false, err
		}
		w.cachedBlock = decoded
		w.cachedBlockIdx = tableBlockIdx
		w.loaded = true
	}

	inode = w.cachedBlock[slot]
	w.cursor++
	return inumber, inode, true, nil
}
