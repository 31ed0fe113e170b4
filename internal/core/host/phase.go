package host

import (
	"fmt"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
)

// Phase 单个调用在宿主协议中的阶段
type Phase uint8

const (
	// PhaseDecoded 调用列表已构造
	PhaseDecoded Phase = iota
	// PhaseMetadataComputed 元数据已提取并通过验证
	PhaseMetadataComputed
	// PhaseInstructionProcessed 已得到 StateUpdate
	PhaseInstructionProcessed
	// PhaseApplied 状态更新已应用
	PhaseApplied
	// PhaseRejected 终态，任何阶段失败都会进入
	PhaseRejected
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseDecoded:
		return "Decoded"
	case PhaseMetadataComputed:
		return "MetadataComputed"
	case PhaseInstructionProcessed:
		return "InstructionProcessed"
	case PhaseApplied:
		return "Applied"
	case PhaseRejected:
		return "Rejected"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// CallState 单个调用的状态机
//
//	Decoded → MetadataComputed → InstructionProcessed → Applied
//
// 任一阶段失败进入 Rejected，不可恢复。
type CallState struct {
	phase Phase
	err   error
}

// NewCallState 新调用处于 Decoded
func NewCallState() *CallState {
	return &CallState{phase: PhaseDecoded}
}

// Phase 当前阶段
func (s *CallState) Phase() Phase {
	return s.phase
}

// Err 进入 Rejected 的原因
func (s *CallState) Err() error {
	return s.err
}

// Advance 前进到下一阶段；只允许按顺序前进一步
func (s *CallState) Advance(next Phase) error {
	if s.phase == PhaseRejected {
		return abi.NewError(abi.Internal, "调用已被拒绝，不能进入 %s", next)
	}
	if next != s.phase+1 || next > PhaseApplied {
		return abi.NewError(abi.Internal, "非法阶段转换: %s -> %s", s.phase, next)
	}
	s.phase = next
	return nil
}

// Reject 进入终态 Rejected
func (s *CallState) Reject(err error) {
	if s.phase == PhaseRejected {
		return
	}
	s.phase = PhaseRejected
	s.err = err
}
