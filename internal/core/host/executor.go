package host

import (
	"context"
	"fmt"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/google/uuid"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	infralog "github.com/weisyn/hellocontract/internal/core/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/hellocontract/pkg/types"
)

// Receipt 交易执行结果
type Receipt struct {
	ExecID   string
	Updates  []types.StateUpdate
	Messages []string
}

// ExecutionError 交易被拒绝的原因
type ExecutionError struct {
	ExecID    string
	CallIndex int
	Kind      types.EntrypointKind
	Err       error
}

// Error 实现error接口
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("交易 %s 被拒绝: call=%d entrypoint=%s: %v", e.ExecID, e.CallIndex, e.Kind, e.Err)
}

// Unwrap 返回底层错误
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Executor 交易执行器
//
// 对每个调用依次执行 metadata、验证、exec，全部通过后再按顺序 apply 并提交。
// 任意一步失败整笔交易被拒绝，存储不发生任何变化。
type Executor struct {
	dispatcher *abi.Dispatcher
	store      storage.BadgerStore
	verifier   *Verifier
	metrics    *Metrics
	logger     log.Logger
	contracts  log.Logger
	events     publisher
}

// NewExecutor 创建执行器；单次入口调用的超时由执行引擎负责
func NewExecutor(dispatcher *abi.Dispatcher, store storage.BadgerStore, verifier *Verifier, metrics *Metrics, logger log.Logger) *Executor {
	if verifier == nil {
		verifier = NewVerifier(nil)
	}
	return &Executor{
		dispatcher: dispatcher,
		store:      store,
		verifier:   verifier,
		metrics:    metrics,
		logger:     infralog.NewModuleLogger(logger, infralog.ModuleExecutor),
		contracts:  infralog.NewModuleLogger(logger, infralog.ModuleContract),
	}
}

// SetEventBus 设置交易事件的发布目标
func (e *Executor) SetEventBus(bus event.EventBus) {
	e.events.bus = bus
}

// Execute 执行一笔交易
//
// 失败时仍返回 Receipt，其中包含已收集的诊断消息。
func (e *Executor) Execute(ctx context.Context, tx *Transaction) (*Receipt, error) {
	start := time.Now()
	receipt := &Receipt{ExecID: uuid.NewString()}
	err := e.execute(ctx, tx, receipt)
	e.metrics.ObserveTransaction(start, err)
	if err != nil {
		e.logger.Warnf("交易执行失败: exec_id=%s err=%v", receipt.ExecID, err)
		receipt.Updates = nil
		if execErr, ok := err.(*ExecutionError); ok {
			e.events.publish(EventTransactionRejected, execErr)
		}
		return receipt, err
	}
	e.logger.Infof("交易已提交: exec_id=%s calls=%d elapsed=%s", receipt.ExecID, len(tx.Calls), time.Since(start))
	e.events.publish(EventTransactionCommitted, receipt)
	return receipt, nil
}

func (e *Executor) execute(ctx context.Context, tx *Transaction, receipt *Receipt) error {
	reject := func(cs *CallState, idx int, kind types.EntrypointKind, err error) error {
		cs.Reject(err)
		return &ExecutionError{ExecID: receipt.ExecID, CallIndex: idx, Kind: kind, Err: err}
	}

	if tx == nil || len(tx.Calls) == 0 {
		return &ExecutionError{ExecID: receipt.ExecID, Err: abi.NewError(abi.Internal, "交易不包含调用")}
	}
	sighash, err := tx.SigHash()
	if err != nil {
		return &ExecutionError{ExecID: receipt.ExecID, Err: err}
	}

	state := NewStateDB(e.store)
	defer state.Discard()

	states := make([]*CallState, len(tx.Calls))
	updates := make([][]byte, len(tx.Calls))
	for i, call := range tx.Calls {
		cs := NewCallState()
		states[i] = cs
		payload := abi.EncodeCallList(tx.CallList(i))

		ret, err := e.invoke(ctx, state, receipt, call.ContractID, types.EntrypointMetadata, payload)
		if err != nil {
			return reject(cs, i, types.EntrypointMetadata, err)
		}
		md, err := abi.DecodeMetadata(ret)
		if err != nil {
			return reject(cs, i, types.EntrypointMetadata, err)
		}
		if err := e.verifier.VerifySignatures(sighash, md.SignaturePubKeys, signaturesAt(tx, i)); err != nil {
			return reject(cs, i, types.EntrypointMetadata, err)
		}
		if err := e.verifier.VerifyProofs(ctx, md.ZkPublicInputs, proofsAt(tx, i)); err != nil {
			return reject(cs, i, types.EntrypointMetadata, err)
		}
		if err := cs.Advance(PhaseMetadataComputed); err != nil {
			return reject(cs, i, types.EntrypointMetadata, err)
		}

		ret, err = e.invoke(ctx, state, receipt, call.ContractID, types.EntrypointExec, payload)
		if err != nil {
			return reject(cs, i, types.EntrypointExec, err)
		}
		update, err := abi.DecodeStateUpdate(ret)
		if err != nil {
			return reject(cs, i, types.EntrypointExec, err)
		}
		updates[i] = ret
		receipt.Updates = append(receipt.Updates, update)
		if err := cs.Advance(PhaseInstructionProcessed); err != nil {
			return reject(cs, i, types.EntrypointExec, err)
		}
	}

	for i, call := range tx.Calls {
		cs := states[i]
		if _, err := e.invoke(ctx, state, receipt, call.ContractID, types.EntrypointApply, updates[i]); err != nil {
			return reject(cs, i, types.EntrypointApply, err)
		}
		if err := cs.Advance(PhaseApplied); err != nil {
			return reject(cs, i, types.EntrypointApply, err)
		}
	}

	if err := state.Commit(ctx); err != nil {
		return &ExecutionError{ExecID: receipt.ExecID, CallIndex: len(tx.Calls) - 1, Kind: types.EntrypointApply, Err: err}
	}
	return nil
}

// invoke 执行一次入口调用并返回返回缓冲区内容
func (e *Executor) invoke(ctx context.Context, state *StateDB, receipt *Receipt, cid types.ContractID, kind types.EntrypointKind, payload []byte) ([]byte, error) {
	env := NewCallEnv(ctx, cid, kind, e.contracts, state.View(ctx, cid, kind))
	err := e.dispatcher.Invoke(env, kind, cid, payload)
	receipt.Messages = append(receipt.Messages, env.Messages()...)
	if err == nil && kind != types.EntrypointApply && !env.Returned() {
		err = abi.NewError(abi.Internal, "%s 入口未写入返回数据", kind)
	}
	e.metrics.ObserveEntrypoint(kind, err)
	if err != nil {
		return nil, err
	}
	return env.ReturnData(), nil
}

func signaturesAt(tx *Transaction, i int) []*schnorr.Signature {
	if i < len(tx.Signatures) {
		return tx.Signatures[i]
	}
	return nil
}

func proofsAt(tx *Transaction, i int) []Proof {
	if i < len(tx.Proofs) {
		return tx.Proofs[i]
	}
	return nil
}
