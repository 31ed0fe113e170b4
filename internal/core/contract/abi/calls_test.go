package abi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/pkg/types"
)

func TestCallListRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		list types.CallList
	}{
		{"单个空载荷调用", types.CallList{CallIdx: 0, Calls: []types.ContractCall{{Selector: 0x00}}}},
		{"多个调用", types.CallList{CallIdx: 2, Calls: []types.ContractCall{
			types.NewContractCall(0x00, nil),
			types.NewContractCall(0x07, []byte("payload")),
			types.NewContractCall(0xff, make([]byte, 300)),
		}}},
		{"空列表", types.CallList{CallIdx: 0}},
		{"越界索引也能编码", types.CallList{CallIdx: 9, Calls: []types.ContractCall{{Selector: 0x01}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := DecodeCallList(EncodeCallList(tc.list))
			require.NoError(t, err)
			assert.True(t, tc.list.Equal(decoded), "decoded %+v", decoded)
		})
	}
}

func TestCallListEncoding(t *testing.T) {
	list := types.CallList{CallIdx: 1, Calls: []types.ContractCall{
		{Selector: 0x00},
		{Selector: 0x00, Payload: []byte{0xaa}},
	}}
	assert.Equal(t, []byte{
		0x01, 0x00, 0x00, 0x00, // call_idx
		0x02,                   // n
		0x00, 0x00,             // call 0
		0x00, 0x01, 0xaa,       // call 1
	}, EncodeCallList(list))
}

func TestDecodeCallListMalformed(t *testing.T) {
	valid := EncodeCallList(types.CallList{Calls: []types.ContractCall{{Selector: 0x00}}})

	cases := []struct {
		name  string
		input []byte
	}{
		{"空输入", nil},
		{"call_idx截断", []byte{0x00, 0x00}},
		{"多余字节", append(append([]byte{}, valid...), 0x00)},
		{"调用截断", valid[:len(valid)-1]},
		{"非规范VarInt", []byte{0x00, 0x00, 0x00, 0x00, 0xfd, 0x01, 0x00, 0x00, 0x00}},
		{"调用数量超出载荷", []byte{0x00, 0x00, 0x00, 0x00, 0x05}},
		{"载荷长度超出剩余字节", []byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x05, 0x01}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeCallList(tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestSelectCall(t *testing.T) {
	calls := []types.ContractCall{{Selector: 0x00}, {Selector: 0x01}}

	t.Run("索引有效", func(t *testing.T) {
		c, err := SelectCall(types.CallList{CallIdx: 1, Calls: calls})
		require.NoError(t, err)
		assert.Equal(t, uint8(0x01), c.Selector)
	})

	t.Run("索引等于长度", func(t *testing.T) {
		_, err := SelectCall(types.CallList{CallIdx: 2, Calls: calls})
		assert.Equal(t, IndexOutOfRange, CodeOf(err))
	})

	t.Run("索引远大于长度", func(t *testing.T) {
		_, err := SelectCall(types.CallList{CallIdx: ^uint32(0), Calls: calls})
		assert.Equal(t, IndexOutOfRange, CodeOf(err))
	})

	t.Run("空列表", func(t *testing.T) {
		_, _, err := DecodeSelectedCall(EncodeCallList(types.CallList{CallIdx: 0}))
		assert.Equal(t, IndexOutOfRange, CodeOf(err))
	})

	t.Run("先报告格式错误", func(t *testing.T) {
		_, _, err := DecodeSelectedCall([]byte{0x05})
		assert.Equal(t, Malformed, CodeOf(err))
	})
}
