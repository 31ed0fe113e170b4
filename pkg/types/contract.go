// Package types provides contract type definitions.
package types

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
)

// ContractIDLength 合约标识长度（字节）
const ContractIDLength = 32

// ContractID 已部署合约实例的标识
//
// 部署时分配，之后不可变。对合约而言是不透明的，只用于路由和数据库命名空间。
type ContractID [ContractIDLength]byte

// ContractIDFromBytes 从原始字节构造合约标识
func ContractIDFromBytes(b []byte) (ContractID, error) {
	var cid ContractID
	if len(b) != ContractIDLength {
		return cid, fmt.Errorf("合约标识长度无效: have %d want %d", len(b), ContractIDLength)
	}
	copy(cid[:], b)
	return cid, nil
}

// ContractIDFromString 解析 base58 编码的合约标识
func ContractIDFromString(s string) (ContractID, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return ContractID{}, fmt.Errorf("合约标识base58解码失败: %w", err)
	}
	return ContractIDFromBytes(raw)
}

// String 返回 base58 编码
func (c ContractID) String() string {
	return base58.Encode(c[:])
}

// Bytes 返回标识字节的副本
func (c ContractID) Bytes() []byte {
	out := make([]byte, ContractIDLength)
	copy(out, c[:])
	return out
}

// ContractCall 单个合约调用记录
//
// Selector 是函数选择字节，Payload 是交给该函数的不透明数据。
// 构造后不可修改：NewContractCall 会复制 payload。
type ContractCall struct {
	Selector uint8
	Payload  []byte
}

// NewContractCall 创建合约调用（复制 payload）
func NewContractCall(selector uint8, payload []byte) ContractCall {
	cp := make([]byte, len(payload))
	copy(cp, payload)
	return ContractCall{Selector: selector, Payload: cp}
}

// Equal 判断两个调用是否逐字节相等
func (c ContractCall) Equal(o ContractCall) bool {
	return c.Selector == o.Selector && bytes.Equal(c.Payload, o.Payload)
}

// CallList 交易内的调用列表以及"本次"调用的索引
//
// 不变式：CallIdx < len(Calls)。违反即终止，不做截断。
type CallList struct {
	CallIdx uint32
	Calls   []ContractCall
}

// Equal 判断两个调用列表是否相等（nil 与空载荷视为相等）
func (l CallList) Equal(o CallList) bool {
	if l.CallIdx != o.CallIdx || len(l.Calls) != len(o.Calls) {
		return false
	}
	for i := range l.Calls {
		if !l.Calls[i].Equal(o.Calls[i]) {
			return false
		}
	}
	return true
}

// ZkPublicInput 某个命名 zk 电路的一组公开输入
type ZkPublicInput struct {
	Circuit string
	Inputs  []fr.Element
}

// Metadata 宿主在信任本次调用前必须验证的内容
//
// 每次调用重新生成，不持久化。
type Metadata struct {
	ZkPublicInputs   []ZkPublicInput
	SignaturePubKeys []*secp256k1.PublicKey
}

// Equal 判断两份元数据是否相等
func (m Metadata) Equal(o Metadata) bool {
	if len(m.ZkPublicInputs) != len(o.ZkPublicInputs) || len(m.SignaturePubKeys) != len(o.SignaturePubKeys) {
		return false
	}
	for i, zk := range m.ZkPublicInputs {
		other := o.ZkPublicInputs[i]
		if zk.Circuit != other.Circuit || len(zk.Inputs) != len(other.Inputs) {
			return false
		}
		for j := range zk.Inputs {
			if !zk.Inputs[j].Equal(&other.Inputs[j]) {
				return false
			}
		}
	}
	for i, pk := range m.SignaturePubKeys {
		if pk == nil || o.SignaturePubKeys[i] == nil {
			if pk != o.SignaturePubKeys[i] {
				return false
			}
			continue
		}
		if !pk.IsEqual(o.SignaturePubKeys[i]) {
			return false
		}
	}
	return true
}

// StateUpdate 指令处理产生、状态应用消费的带标签载荷
type StateUpdate struct {
	Tag     uint8
	Payload []byte
}

// Equal 判断两个状态更新是否相等
func (u StateUpdate) Equal(o StateUpdate) bool {
	return u.Tag == o.Tag && bytes.Equal(u.Payload, o.Payload)
}

// EntrypointKind 宿主调用的执行阶段
type EntrypointKind uint8

const (
	// EntrypointInit 部署时调用一次
	EntrypointInit EntrypointKind = iota
	// EntrypointMetadata 验证前调用，返回 Metadata 编码
	EntrypointMetadata
	// EntrypointExec 处理指令，返回 StateUpdate 编码
	EntrypointExec
	// EntrypointApply 验证通过后提交状态
	EntrypointApply
)

// String 返回阶段名称（与宿主 ABI 名称一致）
func (k EntrypointKind) String() string {
	switch k {
	case EntrypointInit:
		return "init"
	case EntrypointMetadata:
		return "metadata"
	case EntrypointExec:
		return "exec"
	case EntrypointApply:
		return "apply"
	default:
		return fmt.Sprintf("entrypoint(%d)", uint8(k))
	}
}
