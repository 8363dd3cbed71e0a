package simplefs

import (
	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/datablocks"
	simplefserrors "github.com/augustgold/simplefs/errors"
)

// Create allocates the lowest-numbered free inode, initializes it to
// size 0 with no data blocks, and returns its inumber. It returns 0 if
// the file system isn't mounted or no free inode slots remain.
func (fs *FileSystem) Create() int {
	if !fs.mounted {
		fs.fail(simplefserrors.ErrNotMounted)
		return 0
	}

	idx, ok := fs.inodeFree.FindFirst(true, 1, fs.ninodes)
	if !ok {
		fs.fail(simplefserrors.ErrNoFreeInodes)
		return 0
	}

	if err := fs.storeInode(idx, block.Inode{IsValid: 1, Size: 0}); err != nil {
		fs.fail(err)
		return 0
	}

	fs.inodeFree.Set(idx, false)
	return idx
}

// Delete frees inumber's data blocks, its indirect block if any, and
// the inode slot itself. It returns false if the file system isn't
// mounted, inumber is out of range, or the slot isn't currently valid.
func (fs *FileSystem) Delete(inumber int) bool {
	if !fs.mounted {
		fs.fail(simplefserrors.ErrNotMounted)
		return false
	}
	if inumber < 1 || inumber >= fs.ninodes {
		fs.fail(simplefserrors.ErrInvalidInode)
		return false
	}

	inode, err := fs.loadInode(inumber)
	if err != nil {
		fs.fail(err)
		return false
	}
	if inode.IsValid == 0 {
		fs.fail(simplefserrors.ErrInvalidInode)
		return false
	}

	freed := inode
	freed.IsValid = 0
	if err := fs.storeInode(inumber, freed); err != nil {
		fs.fail(err)
		return false
	}

	walker := datablocks.NewWalker(fs.device)
	walker.Seed(inode)
	for {
		bn, ok, err := walker.Next(nil)
		if err != nil {
			fs.fail(err)
			return false
		}
		if !ok {
			break
		}
		fs.blockFree.Set(bn, true)
	}
	if block.UsesIndirect(int(inode.Size)) {
		fs.blockFree.Set(int(inode.Indirect), true)
	}

	fs.inodeFree.Set(inumber, true)
	return true
}

// GetSize returns the logical size, in bytes, of a live inode, or -1
// if the file system isn't mounted, inumber is out of range, or the
// inode isn't currently valid.
func (fs *FileSystem) GetSize(inumber int) int {
	if !fs.mounted {
		fs.fail(simplefserrors.ErrNotMounted)
		return -1
	}
	if inumber < 0 || inumber >= fs.ninodes {
		fs.fail(simplefserrors.ErrInvalidInode)
		return -1
	}

	inode, err := fs.loadInode(inumber)
	if err != nil {
		fs.fail(err)
		return -1
	}
	if inode.IsValid == 0 {
		fs.fail(simplefserrors.ErrInvalidInode)
		return -1
	}
	return int(inode.Size)
}
