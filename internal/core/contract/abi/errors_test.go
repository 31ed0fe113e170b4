package abi

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	t.Run("错误码数值稳定", func(t *testing.T) {
		assert.Equal(t, uint32(0), uint32(Success))
		assert.Equal(t, uint32(1), uint32(Malformed))
		assert.Equal(t, uint32(2), uint32(IndexOutOfRange))
		assert.Equal(t, uint32(3), uint32(UnknownFunction))
		assert.Equal(t, uint32(4), uint32(Internal))
	})

	t.Run("errors.Is按错误码匹配", func(t *testing.T) {
		err := NewError(UnknownFunction, "selector %d", 255)
		assert.True(t, errors.Is(err, ErrUnknownFunction))
		assert.False(t, errors.Is(err, ErrMalformed))

		wrapped := fmt.Errorf("exec: %w", err)
		assert.True(t, errors.Is(wrapped, ErrUnknownFunction))
		assert.Equal(t, UnknownFunction, CodeOf(wrapped))
	})

	t.Run("WrapError保留底层错误", func(t *testing.T) {
		err := WrapError(Malformed, io.ErrUnexpectedEOF, "truncated")
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
		assert.True(t, errors.Is(err, ErrMalformed))
		assert.Nil(t, WrapError(Malformed, nil, "noop"))
	})

	t.Run("CodeOf", func(t *testing.T) {
		assert.Equal(t, Success, CodeOf(nil))
		assert.Equal(t, Internal, CodeOf(errors.New("plain")))
		assert.Equal(t, IndexOutOfRange, CodeOf(ErrIndexOutOfRange))
	})

	t.Run("错误消息", func(t *testing.T) {
		assert.Equal(t, "未知错误", GetErrorMessage(ErrorCode(99)))
		assert.Contains(t, ErrInternal.Error(), "Internal")
	})
}
