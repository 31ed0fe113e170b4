package host

import (
	"context"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/types"
)

// CallEnv 单次入口调用的宿主环境
//
// 返回缓冲区只能写一次；诊断消息同时记录到宿主日志（module=contract）。
type CallEnv struct {
	ctx        context.Context
	logger     log.Logger
	db         contract.Database
	returnData []byte
	returned   bool
	messages   []string
}

var _ contract.Env = (*CallEnv)(nil)

// NewCallEnv 创建入口调用环境；logger 应已带 module 字段
func NewCallEnv(ctx context.Context, cid types.ContractID, kind types.EntrypointKind, logger log.Logger, db contract.Database) *CallEnv {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger != nil {
		logger = logger.With("contract_id", cid.String(), "phase", kind.String())
	}
	return &CallEnv{ctx: ctx, logger: logger, db: db}
}

// Context 调用上下文
func (e *CallEnv) Context() context.Context {
	return e.ctx
}

// Msg 写入诊断消息
func (e *CallEnv) Msg(msg string) {
	e.messages = append(e.messages, msg)
	if e.logger != nil {
		e.logger.Info(msg)
	}
}

// SetReturnData 写入返回缓冲区；第二次写入返回 Internal
func (e *CallEnv) SetReturnData(data []byte) error {
	if e.returned {
		return abi.NewError(abi.Internal, "返回缓冲区已写入")
	}
	e.returned = true
	e.returnData = append([]byte{}, data...)
	return nil
}

// DB 合约数据库视图
func (e *CallEnv) DB() contract.Database {
	return e.db
}

// ReturnData 返回缓冲区内容；未写入时为 nil
func (e *CallEnv) ReturnData() []byte {
	return e.returnData
}

// Returned 返回缓冲区是否已写入
func (e *CallEnv) Returned() bool {
	return e.returned
}

// Messages 本次调用产生的诊断消息
func (e *CallEnv) Messages() []string {
	return e.messages
}
