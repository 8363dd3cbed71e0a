package simplefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNotMountedIsNil(t *testing.T) {
	fs := New(nil)
	assert.NoError(t, fs.Validate())
}

func TestValidateDetectsBitmapDivergence(t *testing.T) {
	fs := newMounted(t, 100)
	inumber := fs.Create()
	require.Equal(t, 4, fs.Write(inumber, []byte("data"), 4, 0))

	// Corrupt the picture Mount built: mark the inode's own data block
	// free even though the inode still claims it.
	inode, err := fs.loadInode(inumber)
	require.NoError(t, err)
	fs.blockFree.Set(int(inode.Direct[0]), true)

	err = fs.Validate()
	assert.Error(t, err)
}

func TestValidateDetectsDoubleClaimedBlock(t *testing.T) {
	fs := newMounted(t, 100)
	i1 := fs.Create()
	i2 := fs.Create()
	require.Equal(t, 4, fs.Write(i1, []byte("data"), 4, 0))

	inode1, err := fs.loadInode(i1)
	require.NoError(t, err)

	inode2, err := fs.loadInode(i2)
	require.NoError(t, err)
	inode2.Size = 4
	inode2.Direct[0] = inode1.Direct[0]
	require.NoError(t, fs.storeInode(i2, inode2))

	err = fs.Validate()
	assert.Error(t, err)
}
