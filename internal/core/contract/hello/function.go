// Package hello 实现 Hello 合约：元数据提取、指令处理与状态应用
package hello

import (
	"fmt"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
)

// ContractFunction 合约函数的封闭枚举
type ContractFunction uint8

const (
	// Hello 唯一的函数变体
	Hello ContractFunction = 0x00
)

// FunctionFromByte 选择字节/标签到函数变体的唯一转换入口
func FunctionFromByte(b uint8) (ContractFunction, error) {
	switch ContractFunction(b) {
	case Hello:
		return Hello, nil
	default:
		return 0, abi.NewError(abi.UnknownFunction, "未知函数选择字节: %#02x", b)
	}
}

// String 返回函数名
func (f ContractFunction) String() string {
	switch f {
	case Hello:
		return "Hello"
	default:
		return fmt.Sprintf("ContractFunction(%#02x)", uint8(f))
	}
}
