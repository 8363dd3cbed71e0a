package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 0, CeilDiv(0, 10))
	assert.Equal(t, 1, CeilDiv(1, 10))
	assert.Equal(t, 1, CeilDiv(10, 10))
	assert.Equal(t, 2, CeilDiv(11, 10))
}

func TestSuperblockRoundTrip(t *testing.T) {
	sb := Superblock{Magic: Magic, NBlocks: 1000, NInodeBlocks: 100, NInodes: 12800}
	buf := EncodeSuperblock(sb)
	require.Len(t, buf, Size)

	decoded, err := DecodeSuperblock(buf)
	require.NoError(t, err)
	assert.Equal(t, sb, decoded)
}

func TestDecodeSuperblockWrongLength(t *testing.T) {
	_, err := DecodeSuperblock(make([]byte, 10))
	assert.Error(t, err)
}

func TestInodeBlockRoundTrip(t *testing.T) {
	var inodes [InodesPerBlock]Inode
	inodes[0] = Inode{IsValid: 1, Size: 4096, Direct: [DirectPointers]int32{10, 0, 0, 0, 0}}
	inodes[5] = Inode{IsValid: 1, Size: 9000, Direct: [DirectPointers]int32{1, 2, 3, 0, 0}, Indirect: 50}

	buf := EncodeInodeBlock(inodes)
	require.Len(t, buf, Size)

	decoded, err := DecodeInodeBlock(buf)
	require.NoError(t, err)
	assert.Equal(t, inodes, decoded)
}

func TestIndirectBlockRoundTrip(t *testing.T) {
	var pointers [PointersPerBlock]int32
	pointers[0] = 7
	pointers[1023] = 99

	buf := EncodeIndirectBlock(pointers)
	decoded, err := DecodeIndirectBlock(buf)
	require.NoError(t, err)
	assert.Equal(t, pointers, decoded)
}

func TestDirectSlotsUsed(t *testing.T) {
	assert.Equal(t, 0, DirectSlotsUsed(0))
	assert.Equal(t, 1, DirectSlotsUsed(1))
	assert.Equal(t, 1, DirectSlotsUsed(Size))
	assert.Equal(t, DirectPointers, DirectSlotsUsed(MaxDirectBytes))
	assert.Equal(t, DirectPointers, DirectSlotsUsed(MaxDirectBytes+1))
}

func TestUsesIndirect(t *testing.T) {
	assert.False(t, UsesIndirect(MaxDirectBytes))
	assert.True(t, UsesIndirect(MaxDirectBytes+1))
}
