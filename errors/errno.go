// Package errors defines the fixed vocabulary of conditions the
// SimpleFS core can fail with. The conditions this file system cares
// about (bad magic, exhausted bitmaps, an offset past the structural
// limit) don't map cleanly onto platform syscall.Errno values, so it
// defines its own sentinels instead.
package errors

import (
	"fmt"
)

type SimplefsError string

const ErrNotMounted = SimplefsError("file system is not mounted")
const ErrAlreadyMounted = SimplefsError("file system is already mounted")
const ErrBadMagic = SimplefsError("superblock magic number does not match")
const ErrInvalidInode = SimplefsError("inode number out of range or not allocated")
const ErrNoFreeInodes = SimplefsError("no free inode slots remain")
const ErrNoFreeBlocks = SimplefsError("no free data blocks remain")
const ErrOffsetTooLarge = SimplefsError("offset is past the end of the file")
const ErrStructuralOverflow = SimplefsError("offset exceeds the maximum file size representable by direct and indirect pointers")
const ErrDeviceIO = SimplefsError("block device I/O failed")
const ErrCorruptImage = SimplefsError("on-disk structure is corrupt")

func (e SimplefsError) Error() string {
	return string(e)
}

func (e SimplefsError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.Error(), message),
		originalError: e,
	}
}

func (e SimplefsError) WrapError(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: err,
	}
}
