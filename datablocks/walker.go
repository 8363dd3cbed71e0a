// Package datablocks provides a cursor for scanning the data blocks
// belonging to a single inode, in logical order: direct pointers first,
// then the pointers held in the indirect block (loaded lazily, and
// only once).
package datablocks

import (
	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/disk"
)

// Walker yields the block numbers of one inode's data blocks in
// logical order. Seed it with an inode, then call Next until ok is
// false. Passing a non-nil buffer to Next also reads the block's raw
// contents into it.
type Walker struct {
	device disk.BlockDevice

	inode  block.Inode
	seeded bool

	cursor      int
	totalBlocks int

	indirect       [block.PointersPerBlock]int32
	indirectLoaded bool
}

// NewWalker builds a Walker over device. Call Seed before Next.
func NewWalker(device disk.BlockDevice) *Walker {
	return &Walker{device: device}
}

// Seed resets the cursor to the start of inode's data blocks.
func (w *Walker) Seed(inode block.Inode) {
	w.inode = inode
	w.seeded = true
	w.cursor = 0
	w.indirectLoaded = false

	total := block.CeilDiv(int(inode.Size), block.Size)
	max := block.DirectPointers + block.PointersPerBlock
	if total > max {
		total = max
	}
	w.totalBlocks = total
}

// Next returns the next data block number in logical order. If
// copyInto is non-nil, the block's contents are also read into it;
// copyInto must then be exactly block.Size bytes. ok is false once
// every block covered by the inode's size has been yielded.
func (w *Walker) Next(copyInto []byte) (blockNum int, ok bool, err error) {
	if !w.seeded || w.cursor >= w.totalBlocks {
		return 0, false, nil
	}

	idx := w.cursor
	if idx < block.DirectPointers {
		blockNum = int(w.inode.Direct[idx])
	} else {
		if !w.indirectLoaded {
			buf := make([]byte, disk.BlockSize)
			if err := w.device.ReadBlock(int(w.inode.Indirect), buf); err != nil {
				return 0, false, err
			}
			pointers, err := block.DecodeIndirectBlock(buf)
			if err != nil {
				return 0, false, err
			}
			w.indirect = pointers
			w.indirectLoaded = true
		}
		blockNum = int(w.indirect[idx-block.DirectPointers])
	}

	if copyInto != nil {
		if err := w.device.ReadBlock(blockNum, copyInto); err != nil {
			return 0, false, err
		}
	}

	w.cursor++
	return blockNum, true, nil
}
