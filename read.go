package simplefs

import (
	"github.com/augustgold/simplefs/datablocks"
	"github.com/augustgold/simplefs/disk"
	simplefserrors "github.com/augustgold/simplefs/errors"
)

// Read copies up to length bytes of inumber's content, starting at
// offset, into out, and returns the number of bytes actually placed.
// It returns 0 when the file system isn't mounted, inumber is out of
// range or not valid, or offset is past the current size (including
// offset == size, which is not an error but yields 0 bytes). No
// allocation occurs; Read never grows a file.
func (fs *FileSystem) Read(inumber int, out []byte, length, offset int) int {
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

	size := int(inode.Size)
	if offset > size {
		fs.fail(simplefserrors.ErrOffsetTooLarge)
		return 0
	}
	if offset == size || length <= 0 {
		return 0
	}

	toRead := length
	if toRead > size-offset {
		toRead = size - offset
	}

	walker := datablocks.NewWalker(fs.device)
	walker.Seed(inode)

	startBlk := offset / disk.BlockSize
	for i := 0; i < startBlk; i++ {
		if _, ok, err := walker.Next(nil); err != nil {
			fs.fail(err)
			return 0
		} else if !ok {
			return 0
		}
	}

	firstOffsetInBlock := offset % disk.BlockSize
	buf := make([]byte, disk.BlockSize)
	written := 0

	for written < toRead {
		_, ok, err := walker.Next(buf)
		if err != nil {
			fs.fail(err)
			return written
		}
		if !ok {
			break
		}

		start := 0
		if written == 0 {
			start = firstOffsetInBlock
		}
		chunk := buf[start:]
		if remaining := toRead - written; len(chunk) > remaining {
			chunk = chunk[:remaining]
		}
		written += copy(out[written:], chunk)
	}

	return written
}
