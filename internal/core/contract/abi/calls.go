package abi

import (
	"github.com/weisyn/hellocontract/pkg/types"
)

// 单个调用的最小编码长度：选择字节 + 长度前缀
const minCallSize = 2

// EncodeCallList 编码调用列表
//
//	u32le call_idx | varint n | n × (u8 selector | varint len | payload)
//
// 不检查 CallIdx 是否越界，越界在解码后由 SelectCall 报告。
func EncodeCallList(l types.CallList) []byte {
	enc := NewEncoder()
	enc.WriteU32(l.CallIdx)
	enc.WriteVarInt(uint64(len(l.Calls)))
	for _, c := range l.Calls {
		enc.WriteU8(c.Selector)
		enc.WriteVarBytes(c.Payload)
	}
	b, _ := enc.Bytes()
	return b
}

// DecodeCallList 精确解码调用列表，多余字节视为 Malformed
func DecodeCallList(b []byte) (types.CallList, error) {
	var l types.CallList
	if err := checkSize(b); err != nil {
		return l, err
	}

	dec := NewDecoder(b)
	idx, err := dec.ReadU32("call_idx")
	if err != nil {
		return l, err
	}
	n, err := dec.ReadCount("calls", minCallSize)
	if err != nil {
		return l, err
	}

	calls := make([]types.ContractCall, 0, n)
	for i := 0; i < n; i++ {
		sel, err := dec.ReadU8("selector")
		if err != nil {
			return l, err
		}
		payload, err := dec.ReadVarBytes("payload")
		if err != nil {
			return l, err
		}
		calls = append(calls, types.ContractCall{Selector: sel, Payload: payload})
	}
	if err := dec.Finish(); err != nil {
		return l, err
	}

	l.CallIdx = idx
	l.Calls = calls
	return l, nil
}

// SelectCall 返回 call_idx 指向的调用；越界返回 IndexOutOfRange
func SelectCall(l types.CallList) (types.ContractCall, error) {
	if uint64(l.CallIdx) >= uint64(len(l.Calls)) {
		return types.ContractCall{}, NewError(IndexOutOfRange, "call_idx %d 超出调用数量 %d", l.CallIdx, len(l.Calls))
	}
	return l.Calls[l.CallIdx], nil
}

// DecodeSelectedCall 解码调用列表并取出本次调用
func DecodeSelectedCall(b []byte) (types.CallList, types.ContractCall, error) {
	l, err := DecodeCallList(b)
	if err != nil {
		return l, types.ContractCall{}, err
	}
	c, err := SelectCall(l)
	if err != nil {
		return l, types.ContractCall{}, err
	}
	return l, c, nil
}
