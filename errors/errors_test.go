package errors_test

import (
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	simplefserrors "github.com/augustgold/simplefs/errors"
)

func TestSimplefsErrorWithMessage(t *testing.T) {
	newErr := simplefserrors.ErrBadMagic.WithMessage("expected 0xf0f03410")
	assert.Equal(t,
		"superblock magic number does not match: expected 0xf0f03410",
		newErr.Error())
	assert.ErrorIs(t, newErr, simplefserrors.ErrBadMagic)
}

func TestSimplefsErrorWrap(t *testing.T) {
	originalErr := goerrors.New("short read")
	newErr := simplefserrors.ErrDeviceIO.WrapError(originalErr)

	assert.Equal(t, "block device I/O failed: short read", newErr.Error())
	assert.ErrorIs(t, newErr, originalErr)
}
