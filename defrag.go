package simplefs

import (
	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/datablocks"
	"github.com/augustgold/simplefs/disk"
	simplefserrors "github.com/augustgold/simplefs/errors"
	"github.com/augustgold/simplefs/inodetable"
)

// Defragment compacts the image in place: every live inode is
// renumbered to the lowest unused slot starting at 1, and every data
// block it owns (direct, then indirect) is relocated to the lowest
// unused block starting just past the inode table. Byte content is
// preserved; only inumbers and block numbers change.
//
// Every source block is read from disk before any relocated block is
// written: the inode table and the compacted data region are built up
// as in-memory images first and flushed to the device only once the
// whole scan is done. Doing the relocation writes eagerly, block by
// block, would let an earlier inode's relocated write clobber a later
// inode's not-yet-read source block whenever the destination prefix
// overlaps still-unread source blocks.
//
// It returns false if the file system isn't mounted.
func (fs *FileSystem) Defragment() bool {
	if !fs.mounted {
		fs.fail(simplefserrors.ErrNotMounted)
		return false
	}

	type liveInode struct {
		oldInumber int
		inode      block.Inode
	}

	var live []liveInode

	tableWalker := inodetable.NewWalker(fs.device, fs.ninodes)
	tableWalker.Seed(1)
	for {
		inumber, inode, ok, err := tableWalker.Next()
		if err != nil {
			fs.fail(err)
			return false
		}
		if !ok {
			break
		}
		if inode.IsValid == 0 {
			continue
		}
		live = append(live, liveInode{oldInumber: inumber, inode: inode})
	}

	var dataImage [][]byte // block.Size-byte blocks, in their new relative order
	newInodes := make([]block.Inode, len(live))

	for i := range live {
		entry := &live[i]
		newInode := entry.inode

		dataWalker := datablocks.NewWalker(fs.device)
		dataWalker.Seed(entry.inode)

		var relocated []int32
		for {
			buf := make([]byte, disk.BlockSize)
			_, ok, err := dataWalker.Next(buf)
			if err != nil {
				fs.fail(err)
				return false
			}
			if !ok {
				break
			}

			newBn := 1 + fs.ninodeblocks + len(dataImage)
			dataImage = append(dataImage, buf)
			relocated = append(relocated, int32(newBn))
		}

		for slot := 0; slot < block.DirectPointers && slot < len(relocated); slot++ {
			newInode.Direct[slot] = relocated[slot]
		}

		if block.UsesIndirect(int(entry.inode.Size)) {
			var pointers [block.PointersPerBlock]int32
			for j := block.DirectPointers; j < len(relocated); j++ {
				pointers[j-block.DirectPointers] = relocated[j]
			}

			newIndirectBlock := 1 + fs.ninodeblocks + len(dataImage)
			dataImage = append(dataImage, block.EncodeIndirectBlock(pointers))
			newInode.Indirect = int32(newIndirectBlock)
		}

		newInodes[i] = newInode
	}

	inodeTableImage := make([][block.InodesPerBlock]block.Inode, fs.ninodeblocks)
	for i, inode := range newInodes {
		newInumber := i + 1
		inodeTableImage[newInumber/block.InodesPerBlock][newInumber%block.InodesPerBlock] = inode
	}

	for i, tableBlock := range inodeTableImage {
		if err := fs.device.WriteBlock(1+i, block.EncodeInodeBlock(tableBlock)); err != nil {
			fs.fail(err)
			return false
		}
	}
	for i, dataBlock := range dataImage {
		if err := fs.device.WriteBlock(1+fs.ninodeblocks+i, dataBlock); err != nil {
			fs.fail(err)
			return false
		}
	}

	nextData := 1 + fs.ninodeblocks + len(dataImage)

	blockFree := fs.blockFree
	for i := 0; i < fs.nblocks; i++ {
		blockFree.Set(i, i >= nextData)
	}
	for i := 0; i <= fs.ninodeblocks && i < fs.nblocks; i++ {
		blockFree.Set(i, false)
	}

	inodeFree := fs.inodeFree
	for i := 0; i < fs.ninodes; i++ {
		inodeFree.Set(i, i > len(live))
	}
	inodeFree.Set(0, false)

	return true
}
