package simplefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/augustgold/simplefs/block"
	"github.com/augustgold/simplefs/disk"
)

func newMounted(t *testing.T, nblocks int) *FileSystem {
	t.Helper()
	device := disk.NewMemoryDevice(nblocks)
	fs := New(device)
	require.True(t, fs.Format())
	require.True(t, fs.Mount())
	return fs
}

func TestFormatOn100BlockDisk(t *testing.T) {
	device := disk.NewMemoryDevice(100)
	fs := New(device)
	require.True(t, fs.Format())

	buf := make([]byte, disk.BlockSize)
	require.NoError(t, device.ReadBlock(0, buf))
	sb, err := block.DecodeSuperblock(buf)
	require.NoError(t, err)

	assert.Equal(t, block.Magic, sb.Magic)
	assert.Equal(t, int32(100), sb.NBlocks)
	assert.Equal(t, int32(10), sb.NInodeBlocks)
	assert.Equal(t, int32(1280), sb.NInodes)

	for i := 0; i < 10; i++ {
		tableBuf := make([]byte, disk.BlockSize)
		require.NoError(t, device.ReadBlock(1+i, tableBuf))
		inodes, err := block.DecodeInodeBlock(tableBuf)
		require.NoError(t, err)
		for _, inode := range inodes {
			assert.Equal(t, int32(0), inode.IsValid)
		}
	}
}

func TestMountThenCreateThreeInodes(t *testing.T) {
	fs := newMounted(t, 100)

	i1 := fs.Create()
	i2 := fs.Create()
	i3 := fs.Create()

	assert.Equal(t, 1, i1)
	assert.Equal(t, 2, i2)
	assert.Equal(t, 3, i3)

	assert.False(t, fs.inodeFree.Test(0))
	assert.False(t, fs.inodeFree.Test(1))
	assert.False(t, fs.inodeFree.Test(2))
	assert.False(t, fs.inodeFree.Test(3))
	assert.True(t, fs.inodeFree.Test(4))
}

func TestWriteThenReadSmallFile(t *testing.T) {
	fs := newMounted(t, 100)
	inumber := fs.Create()
	fs.Create()
	require.Equal(t, 3, fs.Create())

	n := fs.Write(2, []byte("abcd"), 4, 0)
	assert.Equal(t, 4, n)

	buf := make([]byte, 4)
	read := fs.Read(2, buf, 4, 0)
	assert.Equal(t, 4, read)
	assert.Equal(t, "abcd", string(buf))
	assert.Equal(t, 4, fs.GetSize(2))

	_ = inumber
}

func TestWriteSpanningIndirectBlock(t *testing.T) {
	fs := newMounted(t, 100)
	inumber := fs.Create()
	require.Equal(t, 1, inumber)

	data := make([]byte, 20481)
	for i := range data {
		data[i] = byte(i)
	}

	n := fs.Write(1, data, len(data), 0)
	assert.Equal(t, 20481, n)
	assert.Equal(t, 20481, fs.GetSize(1))

	inode, err := fs.loadInode(1)
	require.NoError(t, err)

	seen := map[int32]bool{}
	for _, d := range inode.Direct {
		assert.GreaterOrEqual(t, d, int32(11))
		assert.Less(t, d, int32(100))
		assert.False(t, seen[d], "direct pointers must be distinct")
		seen[d] = true
	}
	assert.False(t, seen[inode.Indirect])
	assert.GreaterOrEqual(t, inode.Indirect, int32(11))

	buf := make([]byte, disk.BlockSize)
	require.NoError(t, fs.device.ReadBlock(int(inode.Indirect), buf))
	pointers, err := block.DecodeIndirectBlock(buf)
	require.NoError(t, err)
	assert.NotEqual(t, int32(0), pointers[0])
	for i := 1; i < len(pointers); i++ {
		assert.Equal(t, int32(0), pointers[i])
	}

	readBack := make([]byte, len(data))
	got := fs.Read(1, readBack, len(readBack), 0)
	assert.Equal(t, len(data), got)
	assert.Equal(t, data, readBack)
}

func TestDeleteThenCreateReturnsLowestFreedSlot(t *testing.T) {
	fs := newMounted(t, 100)
	i1 := fs.Create()
	fs.Create()
	fs.Create()

	require.True(t, fs.Delete(i1))
	next := fs.Create()
	assert.LessOrEqual(t, next, i1)
}

func TestReadAtEndOfFileReturnsZero(t *testing.T) {
	fs := newMounted(t, 100)
	inumber := fs.Create()
	fs.Write(inumber, []byte("xyz"), 3, 0)

	buf := make([]byte, 10)
	n := fs.Read(inumber, buf, 10, 3)
	assert.Equal(t, 0, n)
}

func TestWriteBeyondSizeFails(t *testing.T) {
	fs := newMounted(t, 100)
	inumber := fs.Create()
	fs.Write(inumber, []byte("xyz"), 3, 0)

	n := fs.Write(inumber, []byte("late"), 4, 10)
	assert.Equal(t, 0, n)
}

func TestFillSmallDiskThenFurtherWriteReturnsZero(t *testing.T) {
	fs := newMounted(t, 20) // 2 inode blocks, 17 blocks free for data
	inumber := fs.Create()
	require.Equal(t, 1, inumber)

	// Of the 17 free blocks, one is consumed by the indirect pointer
	// block itself once the file grows past 5 direct blocks, leaving
	// 16 blocks actually available to hold file content.
	attempt := 17 * disk.BlockSize
	capacity := 16 * disk.BlockSize
	data := make([]byte, attempt)
	n := fs.Write(inumber, data, len(data), 0)
	assert.Equal(t, capacity, n)

	n2 := fs.Write(inumber, []byte("x"), 1, capacity)
	assert.Equal(t, 0, n2)

	// 256 inode slots on a 20-block disk (2 inode blocks * 128), one of
	// which (inode 0) is permanently reserved, leaving 255 creatable.
	count := 1
	for {
		id := fs.Create()
		if id == 0 {
			break
		}
		count++
	}
	assert.Equal(t, 255, count)
}

func TestValidateCleanAfterMount(t *testing.T) {
	fs := newMounted(t, 100)
	fs.Create()
	fs.Write(1, []byte("abcd"), 4, 0)
	assert.NoError(t, fs.Validate())
}
