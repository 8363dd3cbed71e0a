package simplefs

import (
	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/disk"
	simplefserrors "github.com/augustgold/simplefs/errors"
)

// Write stores up to length bytes of in into inumber, starting at
// offset, allocating new data blocks (and the indirect block, if
// needed) as the file grows past its current size. It returns the
// number of bytes actually written.
//
// If allocation runs out partway through, whatever was already placed
// is flushed, the inode's size is updated to reflect it, and the
// partial byte count is returned rather than treating the shortfall as
// an all-or-nothing failure. Writing past the structural limit of
// direct-plus-indirect pointers stops the loop the same way.
func (fs *FileSystem) Write(inumber int, in []byte, length, offset int) int {
	if !fs.mounted {
		fs.fail(simplefserrors.ErrNotMounted)
		return 0
	}
	if inumber < 1 || inumber >= fs.ninodes {
		fs.fail(simplefserrors.ErrInvalidInode)
		return 0
	}

	inode, err := fs.loadInode(inumber)
	if err != nil {
		fs.fail(err)
		return 0
	}
	if inode.IsValid == 0 {
		fs.fail(simplefserrors.ErrInvalidInode)
		return 0
	}
	if offset > int(inode.Size) {
		fs.fail(simplefserrors.ErrOffsetTooLarge)
		return 0
	}
	if length <= 0 {
		return 0
	}

	curBlocks := block.CeilDiv(int(inode.Size), disk.BlockSize)
	indirectLoaded := block.UsesIndirect(int(inode.Size))
	indirectDirty := false
	var indirect [block.PointersPerBlock]int32
	if indirectLoaded {
		buf := make([]byte, disk.BlockSize)
		if err := fs.device.ReadBlock(int(inode.Indirect), buf); err != nil {
			fs.fail(err)
			return 0
		}
		decoded, err := block.DecodeIndirectBlock(buf)
		if err != nil {
			fs.fail(err)
			return 0
		}
		indirect = decoded
	}

	written := 0
	failure := error(nil)

	blk := offset / disk.BlockSize
	inBlock := offset % disk.BlockSize

	for written < length {
		if blk >= block.DirectPointers+block.PointersPerBlock {
			failure = simplefserrors.ErrStructuralOverflow
			break
		}

		var blockNum int
		needAlloc := blk >= curBlocks

		if !needAlloc {
			if blk < block.DirectPointers {
				blockNum = int(inode.Direct[blk])
			} else {
				blockNum = int(indirect[blk-block.DirectPointers])
			}
		} else {
			idx, ok := fs.blockFree.FindFirst(true, 1+fs.ninodeblocks, fs.nblocks)
			if !ok {
				failure = simplefserrors.ErrNoFreeBlocks
				break
			}

			if blk >= block.DirectPointers && !indirectLoaded {
				indIdx, indOk := fs.blockFree.FindFirst(true, 1+fs.ninodeblocks, fs.nblocks)
				if !indOk || indIdx == idx {
					// Look past idx for a second, distinct block.
					indIdx, indOk = fs.blockFree.FindFirst(true, idx+1, fs.nblocks)
				}
				if !indOk {
					fs.blockFree.Set(idx, true) // idx is not marked used yet; keep it free
					failure = simplefserrors.ErrNoFreeBlocks
					break
				}
				fs.blockFree.Set(indIdx, false)
				inode.Indirect = int32(indIdx)
				indirect = [block.PointersPerBlock]int32{}
				indirectLoaded = true
			}

			fs.blockFree.Set(idx, false)
			blockNum = idx

			if blk < block.DirectPointers {
				inode.Direct[blk] = int32(blockNum)
			} else {
				indirect[blk-block.DirectPointers] = int32(blockNum)
				indirectDirty = true
			}
			curBlocks = blk + 1
		}

		buf := make([]byte, disk.BlockSize)
		if !needAlloc {
			if err := fs.device.ReadBlock(blockNum, buf); err != nil {
				failure = err
				break
			}
		}

		n := copy(buf[inBlock:], in[written:min(length, written+disk.BlockSize-inBlock)])
		if err := fs.device.WriteBlock(blockNum, buf); err != nil {
			failure = err
			break
		}

		written += n
		blk++
		inBlock = 0
	}

	if indirectDirty {
		if err := fs.device.WriteBlock(int(inode.Indirect), block.EncodeIndirectBlock(indirect)); err != nil {
			if failure == nil {
				failure = err
			}
		}
	}

	newSize := offset + written
	if newSize > int(inode.Size) {
		inode.Size = int32(newSize)
	}
	if err := fs.storeInode(inumber, inode); err != nil {
		fs.fail(err)
		return written
	}

	if failure != nil {
		fs.fail(failure)
	}
	return written
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
