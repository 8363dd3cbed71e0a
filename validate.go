package simplefs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/datablocks"
	"github.com/augustgold/simplefs/inodetable"
)

// Validate re-derives the free-inode and free-block bitmaps from the
// on-disk inode table and compares them, block by block, against the
// bitmaps Mount built. Any divergence -- a block claimed by two
// inodes, an inode marked valid whose pointer runs off the end of the
// device, a free-block bit that disagrees with the walk -- is
// collected rather than stopping at the first one, so a single call
// reports everything wrong with an image at once.
//
// It returns nil if the file system isn't mounted or is internally
// consistent.
func (fs *FileSystem) Validate() error {
	if !fs.mounted {
		return nil
	}

	var result *multierror.Error

	seenBy := make([]int, fs.nblocks)
	for i := 0; i <= fs.ninodeblocks && i < fs.nblocks; i++ {
		seenBy[i] = -1 // reserved for the superblock/inode table
	}

	walker := inodetable.NewWalker(fs.device, fs.ninodes)
	walker.Seed(1)

	for {
		inumber, inode, ok, err := walker.Next()
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("reading inode %d: %w", inumber, err))
			break
		}
		if !ok {
			break
		}
		if inode.IsValid == 0 {
			if !fs.inodeFree.Test(inumber) {
				result = multierror.Append(result, fmt.Errorf("inode %d is free on disk but marked allocated in the bitmap", inumber))
			}
			continue
		}
		if fs.inodeFree.Test(inumber) {
			result = multierror.Append(result, fmt.Errorf("inode %d is valid on disk but marked free in the bitmap", inumber))
		}

		maxSize := block.MaxFileBytes
		if int(inode.Size) > maxSize {
			result = multierror.Append(result, fmt.Errorf("inode %d has size %d exceeding the structural maximum %d", inumber, inode.Size, maxSize))
		}

		dataWalker := datablocks.NewWalker(fs.device)
		dataWalker.Seed(inode)
		for {
			bn, ok, err := dataWalker.Next(nil)
			if err != nil {
				result = multierror.Append(result, fmt.Errorf("inode %d: walking data blocks: %w", inumber, err))
				break
			}
			if !ok {
				break
			}
			if bn < 0 || bn >= fs.nblocks {
				result = multierror.Append(result, fmt.Errorf("inode %d references out-of-range block %d", inumber, bn))
				continue
			}
			markBlockClaim(&result, seenBy, bn, inumber)
		}

		if block.UsesIndirect(int(inode.Size)) {
			ind := int(inode.Indirect)
			if ind < 0 || ind >= fs.nblocks {
				result = multierror.Append(result, fmt.Errorf("inode %d references out-of-range indirect block %d", inumber, ind))
			} else {
				markBlockClaim(&result, seenBy, ind, inumber)
			}
		}
	}

	for bn := 0; bn < fs.nblocks; bn++ {
		free := fs.blockFree.Test(bn)
		claimed := seenBy[bn] != 0
		if free && claimed {
			result = multierror.Append(result, fmt.Errorf("block %d is claimed by inode %d but marked free in the bitmap", bn, seenBy[bn]))
		}
		if !free && !claimed {
			result = multierror.Append(result, fmt.Errorf("block %d is marked allocated in the bitmap but not referenced by any inode", bn))
		}
	}

	if result == nil {
		return nil
	}
	return result.ErrorOrNil()
}

func markBlockClaim(result **multierror.Error, seenBy []int, bn int, inumber int) {
	if seenBy[bn] == -1 {
		*result = multierror.Append(*result, fmt.Errorf("inode %d claims reserved block %d", inumber, bn))
		return
	}
	if seenBy[bn] != 0 {
		*result = multierror.Append(*result, fmt.Errorf("block %d is claimed by both inode %d and inode %d", bn, seenBy[bn], inumber))
		return
	}
	seenBy[bn] = inumber
}
