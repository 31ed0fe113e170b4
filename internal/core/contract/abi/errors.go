// Package abi 实现合约与宿主之间的调用契约：错误分类、线格式编解码以及入口分发。
package abi

import (
	"errors"
	"fmt"
)

// ============================================================================
// 合约错误码
// ============================================================================
//
// 错误码越过宿主边界，数值必须保持稳定。
//   - Malformed:       载荷无法解码为预期结构
//   - IndexOutOfRange: call_idx >= 调用数量
//   - UnknownFunction: 选择字节/标签不属于 ContractFunction 枚举
//   - Internal:        宿主环境契约被破坏（如返回缓冲区写入失败）

// ErrorCode 合约错误码
type ErrorCode uint32

const (
	Success         ErrorCode = 0
	Malformed       ErrorCode = 1
	IndexOutOfRange ErrorCode = 2
	UnknownFunction ErrorCode = 3
	Internal        ErrorCode = 4
)

// String 返回错误码名称
func (c ErrorCode) String() string {
	switch c {
	case Success:
		return "Success"
	case Malformed:
		return "Malformed"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case UnknownFunction:
		return "UnknownFunction"
	case Internal:
		return "Internal"
	default:
		return fmt.Sprintf("ErrorCode(%d)", uint32(c))
	}
}

// GetErrorMessage 获取错误码对应的错误消息（用于日志和调试）
func GetErrorMessage(code ErrorCode) string {
	switch code {
	case Success:
		return "成功"
	case Malformed:
		return "载荷格式错误"
	case IndexOutOfRange:
		return "调用索引越界"
	case UnknownFunction:
		return "未知合约函数"
	case Internal:
		return "宿主环境内部错误"
	default:
		return "未知错误"
	}
}

// ContractError 合约错误
type ContractError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// 可用于 errors.Is 的哨兵错误，只按错误码匹配
var (
	ErrMalformed       = &ContractError{Code: Malformed}
	ErrIndexOutOfRange = &ContractError{Code: IndexOutOfRange}
	ErrUnknownFunction = &ContractError{Code: UnknownFunction}
	ErrInternal        = &ContractError{Code: Internal}
)

// ErrTreeNotFound 合约数据库中没有该树
//
// 以 Internal 错误码包装后返回，调用方用 errors.Is 与读取失败区分。
var ErrTreeNotFound = errors.New("树不存在")

// Error 实现error接口
func (e *ContractError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = GetErrorMessage(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap 返回底层错误
func (e *ContractError) Unwrap() error {
	return e.Err
}

// Is 按错误码匹配
func (e *ContractError) Is(target error) bool {
	t, ok := target.(*ContractError)
	return ok && t.Code == e.Code
}

// NewError 创建合约错误
func NewError(code ErrorCode, format string, args ...interface{}) *ContractError {
	return &ContractError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError 用错误码封装底层错误；err 为 nil 时返回 nil
func WrapError(code ErrorCode, err error, message string) error {
	if err == nil {
		return nil
	}
	return &ContractError{Code: code, Message: message, Err: err}
}

// CodeOf 提取错误码；非合约错误一律视为 Internal
func CodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return Internal
}
