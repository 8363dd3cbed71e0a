package disk

import (
	"io"

	"github.com/xaionaro-go/bytesextra"

	simplefserrors "github.com/augustgold/simplefs/errors"
)

// MemoryDevice is a BlockDevice backed by an in-memory byte slice: wrap
// a plain []byte in an io.ReadWriteSeeker via bytesextra so the rest of
// the code can use ordinary seek/read/write regardless of backing
// store. It exists so copyin/copyout round trips and defragmentation
// scenarios can run against scratch disks without creating temp files.
type MemoryDevice struct {
	stream  io.ReadWriteSeeker
	nblocks int
}

// NewMemoryDevice allocates nblocks worth of zeroed storage in memory.
func NewMemoryDevice(nblocks int) *MemoryDevice {
	data := make([]byte, nblocks*BlockSize)
	return &MemoryDevice{
		stream:  bytesextra.NewReadWriteSeeker(data),
		nblocks: nblocks,
	}
}

func (d *MemoryDevice) Size() int {
	return d.nblocks
}

func (d *MemoryDevice) seek(block int) error {
	_, err := d.stream.Seek(int64(block)*BlockSize, io.SeekStart)
	return err
}

func (d *MemoryDevice) ReadBlock(block int, buf []byte) error {
	if block < 0 || block >= d.nblocks || len(buf) != BlockSize {
		return simplefserrors.ErrDeviceIO.WithMessage("read out of bounds")
	}
	if err := d.seek(block); err != nil {
		return simplefserrors.ErrDeviceIO.WrapError(err)
	}
	if _, err := io.ReadFull(d.stream, buf); err != nil {
		return simplefserrors.ErrDeviceIO.WrapError(err)
	}
	return nil
}

func (d *MemoryDevice) WriteBlock(block int, buf []byte) error {
	if block < 0 || block >= d.nblocks || len(buf) != BlockSize {
		return simplefserrors.ErrDeviceIO.WithMessage("write out of bounds")
	}
	if err := d.seek(block); err != nil {
		return simplefserrors.ErrDeviceIO.WrapError(err)
	}
	if _, err := d.stream.Write(buf); err != nil {
		return simplefserrors.ErrDeviceIO.WrapError(err)
	}
	return nil
}

func (d *MemoryDevice) Close() error {
	return nil
}
