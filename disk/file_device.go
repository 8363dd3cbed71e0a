package disk

import (
	"fmt"
	"os"

	simplefserrors "github.com/augustgold/simplefs/errors"
)

// FileDevice is a BlockDevice backed by a host file, the Go analogue of
// the emulator's disk_init/disk_size/disk_read/disk_write/disk_close.
// The block count is fixed the moment the device is opened.
type FileDevice struct {
	file    *os.File
	nblocks int
}

// InitFileDevice creates (or reuses) the file at path and sizes it to
// hold exactly nblocks blocks. This is the equivalent of disk_init.
func InitFileDevice(path string, nblocks int) (*FileDevice, error) {
	if nblocks <= 0 {
		return nil, simplefserrors.ErrDeviceIO.WithMessage("nblocks must be positive")
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, simplefserrors.ErrDeviceIO.WrapError(err)
	}

	if err := file.Truncate(int64(nblocks) * BlockSize); err != nil {
		file.Close()
		return nil, simplefserrors.ErrDeviceIO.WrapError(err)
	}

	return &FileDevice{file: file, nblocks: nblocks}, nil
}

func (d *FileDevice) Size() int {
	return d.nblocks
}

func (d *FileDevice) checkBounds(block int, buf []byte) error {
	if block < 0 || block >= d.nblocks {
		return simplefserrors.ErrDeviceIO.WithMessage(
			fmt.Sprintf("block %d not in range [0, %d)", block, d.nblocks))
	}
	if len(buf) != BlockSize {
		return simplefserrors.ErrDeviceIO.WithMessage(
			fmt.Sprintf("buffer must be exactly %d bytes, got %d", BlockSize, len(buf)))
	}
	return nil
}

func (d *FileDevice) ReadBlock(block int, buf []byte) error {
	if err := d.checkBounds(block, buf); err != nil {
		return err
	}
	if _, err := d.file.ReadAt(buf, int64(block)*BlockSize); err != nil {
		return simplefserrors.ErrDeviceIO.WrapError(err)
	}
	return nil
}

func (d *FileDevice) WriteBlock(block int, buf []byte) error {
	if err := d.checkBounds(block, buf); err != nil {
		return err
	}
	if _, err := d.file.WriteAt(buf, int64(block)*BlockSize); err != nil {
		return simplefserrors.ErrDeviceIO.WrapError(err)
	}
	return nil
}

func (d *FileDevice) Close() error {
	if err := d.file.Sync(); err != nil {
		return simplefserrors.ErrDeviceIO.WrapError(err)
	}
	return d.file.Close()
}
