package simplefs

import (
	"github.com/augustgold/simplefs/bitmap"
	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/datablocks"
	"github.com/augustgold/simplefs/disk"
	simplefserrors "github.com/augustgold/simplefs/errors"
	"github.com/augustgold/simplefs/inodetable"
)

// Mount reads the superblock, validates its magic number, and
// reconstructs both allocation bitmaps by walking the on-disk inode
// table. It fails if already mounted or if the magic doesn't match; in
// either case the file system is left unmounted.
func (fs *FileSystem) Mount() bool {
	if fs.mounted {
		fs.fail(simplefserrors.ErrAlreadyMounted)
		return false
	}

	buf := make([]byte, disk.BlockSize)
	if err := fs.device.ReadBlock(0, buf); err != nil {
		fs.fail(err)
		return false
	}
	sb, err := block.DecodeSuperblock(buf)
	if err != nil {
		fs.fail(err)
		return false
	}
	if sb.Magic != block.Magic {
		fs.fail(simplefserrors.ErrBadMagic)
		return false
	}

	nblocks := int(sb.NBlocks)
	ninodeblocks := int(sb.NInodeBlocks)
	ninodes := int(sb.NInodes)

	blockFree := bitmap.New(nblocks)
	for i := 0; i < nblocks; i++ {
		blockFree.Set(i, true)
	}
	// Superblock plus every inode table block: indices 0..ninodeblocks
	// inclusive are never available for data.
	for i := 0; i <= ninodeblocks && i < nblocks; i++ {
		blockFree.Set(i, false)
	}

	inodeFree := bitmap.New(ninodes)
	inodeFree.Set(0, false) // inode 0 is reserved, never allocatable

	tableWalker := inodetable.NewWalker(fs.device, ninodes)
	tableWalker.Seed(1)
	dataWalker := datablocks.NewWalker(fs.device)

	for {
		inumber, inode, ok, err := tableWalker.Next()
		if err != nil {
			fs.fail(err)
			return false
		}
		if !ok {
			break
		}

		inodeFree.Set(inumber, inode.IsValid == 0)
		if inode.IsValid == 0 {
			continue
		}

		dataWalker.Seed(inode)
		for {
			bn, ok, err := dataWalker.Next(nil)
			if err != nil {
				fs.fail(err)
				return false
			}
			if !ok {
				break
			}
			if bn >= 0 && bn < nblocks {
				blockFree.Set(bn, false)
			}
		}
		if block.UsesIndirect(int(inode.Size)) {
			ind := int(inode.Indirect)
			if ind >= 0 && ind < nblocks {
				blockFree.Set(ind, false)
			}
		}
	}

	fs.nblocks = nblocks
	fs.ninodeblocks = ninodeblocks
	fs.ninodes = ninodes
	fs.inodeFree = inodeFree
	fs.blockFree = blockFree
	fs.mounted = true
	return true
}
