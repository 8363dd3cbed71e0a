package simplefs

import (
	"fmt"

	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/datablocks"
	"github.com/augustgold/simplefs/inodetable"
)

// Debug prints the superblock geometry and every live inode's size and
// block pointers to stdout. It never fails; a device read error is
// reported inline and the walk stops.
func (fs *FileSystem) Debug() {
	fmt.Printf("superblock:\n")
	fmt.Printf("    %d blocks\n", fs.nblocks)
	fmt.Printf("    %d inode blocks\n", fs.ninodeblocks)
	fmt.Printf("    %d inodes total\n", fs.ninodes)

	walker := inodetable.NewWalker(fs.device, fs.ninodes)
	walker.Seed(1)

	for {
		inumber, inode, ok, err := walker.Next()
		if err != nil {
			fmt.Printf("error reading inode table: %v\n", err)
			return
		}
		if !ok {
			break
		}
		if inode.IsValid == 0 {
			continue
		}

		fmt.Printf("inode %d:\n", inumber)
		fmt.Printf("    size: %d bytes\n", inode.Size)

		dataWalker := datablocks.NewWalker(fs.device)
		dataWalker.Seed(inode)

		direct := make([]int, 0, block.DirectPointers)
		indirectBlocks := make([]int, 0, block.PointersPerBlock)
		n := 0
		for {
			bn, ok, err := dataWalker.Next(nil)
			if err != nil {
				fmt.Printf("    error walking data blocks: %v\n", err)
				break
			}
			if !ok {
				break
			}
			if n < block.DirectPointers {
				direct = append(direct, bn)
			} else {
				indirectBlocks = append(indirectBlocks, bn)
			}
			n++
		}

		fmt.Printf("    direct blocks: %v\n", direct)
		if block.UsesIndirect(int(inode.Size)) {
			fmt.Printf("    indirect block: %d\n", inode.Indirect)
			fmt.Printf("    indirect data blocks: %v\n", indirectBlocks)
		}
	}
}
