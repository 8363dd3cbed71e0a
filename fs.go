// Package simplefs implements a flat, directory-less file system over
// a fixed-size, block-addressable disk: numbered inodes, direct and
// single-indirect data pointers, and a pair of bitmaps that track free
// inodes and free data blocks.
//
// There is no process-wide state. New returns a handle, and Mount and
// every other operation is a method on that handle, so independent mounts
// (e.g. in tests) never interfere with each other.
package simplefs

import (
	"github.com/augustgold/simplefs/bitmap"
	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/disk"
	simplefserrors "github.com/augustgold/simplefs/errors"
)

// FileSystem is the in-memory mount state for one disk. It pairs the
// two allocation bitmaps with the disk they describe.
type FileSystem struct {
	device disk.BlockDevice

	mounted      bool
	nblocks      int
	ninodeblocks int
	ninodes      int

	inodeFree *bitmap.Bitmap
	blockFree *bitmap.Bitmap

	lastErr error
}

// New wraps a block device in a filesystem handle. The handle has no
// usable state until Format and/or Mount succeed.
func New(device disk.BlockDevice) *FileSystem {
	return &FileSystem{device: device}
}

// LastError returns the underlying cause of the most recently failed
// operation, or nil. Every public method here reports success with a
// boolean or a byte count per spec; LastError exists for callers (the
// CLI, tests) that want the detail behind a false/0 result.
func (fs *FileSystem) LastError() error {
	return fs.lastErr
}

func (fs *FileSystem) fail(err error) {
	fs.lastErr = err
}

// Format writes a fresh superblock and zeroes every inode slot. It
// fails if the file system is currently mounted. It does not touch the
// data region; any data blocks orphaned by a prior image become free
// again the next time Mount rebuilds the block bitmap.
func (fs *FileSystem) Format() bool {
	if fs.mounted {
		fs.fail(simplefserrors.ErrAlreadyMounted)
		return false
	}

	nblocks := fs.device.Size()
	ninodeblocks := block.CeilDiv(nblocks, 10)
	ninodes := ninodeblocks * block.InodesPerBlock

	sb := block.Superblock{
		Magic:        block.Magic,
		NBlocks:      int32(nblocks),
		NInodeBlocks: int32(ninodeblocks),
		NInodes:      int32(ninodes),
	}
	if err := fs.device.WriteBlock(0, block.EncodeSuperblock(sb)); err != nil {
		fs.fail(err)
		return false
	}

	var empty [block.InodesPerBlock]block.Inode
	emptyBuf := block.EncodeInodeBlock(empty)
	for i := 0; i < ninodeblocks; i++ {
		if err := fs.device.WriteBlock(1+i, emptyBuf); err != nil {
			fs.fail(err)
			return false
		}
	}

	return true
}

// Close unmounts the file system (if mounted) and releases the
// underlying device.
func (fs *FileSystem) Close() error {
	fs.mounted = false
	return fs.device.Close()
}

// NBlocks, NInodeBlocks, and NInodes expose the superblock geometry
// recorded at the last successful Mount. They are 0 before mounting.
func (fs *FileSystem) NBlocks() int      { return fs.nblocks }
func (fs *FileSystem) NInodeBlocks() int { return fs.ninodeblocks }
func (fs *FileSystem) NInodes() int      { return fs.ninodes }

// IsMounted reports whether Mount has succeeded and Close/unmount has
// not happened since.
func (fs *FileSystem) IsMounted() bool { return fs.mounted }

// readInodeTableBlock decodes the table block holding inode numbers
// [tableBlockIdx*InodesPerBlock, (tableBlockIdx+1)*InodesPerBlock).
func (fs *FileSystem) readInodeTableBlock(tableBlockIdx int) ([block.InodesPerBlock]block.Inode, error) {
	buf := make([]byte, disk.BlockSize)
	if err := fs.device.ReadBlock(1+tableBlockIdx, buf); err != nil {
		return [block.InodesPerBlock]block.Inode{}, err
	}
	return block.DecodeInodeBlock(buf)
}

func (fs *FileSystem) writeInodeTableBlock(tableBlockIdx int, inodes [block.InodesPerBlock]block.Inode) error {
	return fs.device.WriteBlock(1+tableBlockIdx, block.EncodeInodeBlock(inodes))
}

// loadInode reads the single inode record for inumber.
func (fs *FileSystem) loadInode(inumber int) (block.Inode, error) {
	tableBlockIdx := inumber / block.InodesPerBlock
	slot := inumber % block.InodesPerBlock
	inodes, err := fs.readInodeTableBlock(tableBlockIdx)
	if err != nil {
		return block.Inode{}, err
	}
	return inodes[slot], nil
}

// storeInode writes a single inode record back to its table block,
// leaving the rest of the block untouched.
func (fs *FileSystem) storeInode(inumber int, inode block.Inode) error {
	tableBlockIdx := inumber / block.InodesPerBlock
	slot := inumber % block.InodesPerBlock
	inodes, err := fs.readInodeTableBlock(tableBlockIdx)
	if err != nil {
		return err
	}
	inodes[slot] = inode
	return fs.writeInodeTableBlock(tableBlockIdx, inodes)
}
