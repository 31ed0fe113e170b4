package abi

import (
	"github.com/weisyn/hellocontract/pkg/types"
)

// EncodeStateUpdate 编码状态更新：u8 function_tag | tag_payload
//
// tag_payload 占据缓冲区剩余部分，其内部格式由函数变体自行定义。
func EncodeStateUpdate(u types.StateUpdate) []byte {
	out := make([]byte, 0, 1+len(u.Payload))
	out = append(out, u.Tag)
	return append(out, u.Payload...)
}

// DecodeStateUpdate 拆分标签与载荷；空输入返回 Malformed
func DecodeStateUpdate(b []byte) (types.StateUpdate, error) {
	var u types.StateUpdate
	if err := checkSize(b); err != nil {
		return u, err
	}
	dec := NewDecoder(b)
	tag, err := dec.ReadU8("function_tag")
	if err != nil {
		return u, err
	}
	u.Tag = tag
	u.Payload = dec.Rest()
	return u, nil
}
