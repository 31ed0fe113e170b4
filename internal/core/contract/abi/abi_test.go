package abi

import (
	"context"

	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
)

// recordingEnv 记录诊断消息与返回数据的测试环境
type recordingEnv struct {
	msgs       []string
	returnData []byte
	written    bool
}

func (e *recordingEnv) Context() context.Context { return context.Background() }

func (e *recordingEnv) Msg(msg string) { e.msgs = append(e.msgs, msg) }

func (e *recordingEnv) SetReturnData(data []byte) error {
	if e.written {
		return NewError(Internal, "返回缓冲区已写入")
	}
	e.written = true
	e.returnData = append([]byte{}, data...)
	return nil
}

func (e *recordingEnv) DB() contract.Database { return nil }
