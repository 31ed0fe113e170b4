package abi

import (
	"fmt"

	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/types"
)

// Route 按入口类型调用合约的对应入口
//
// 只做路由，不含业务逻辑。失败时通过 env.Msg 写入诊断，并原样返回错误。
func Route(env contract.Env, c contract.Contract, kind types.EntrypointKind, cid types.ContractID, payload []byte) error {
	var err error
	switch kind {
	case types.EntrypointInit:
		err = c.Init(env, cid, payload)
	case types.EntrypointMetadata:
		err = c.Metadata(env, cid, payload)
	case types.EntrypointExec:
		err = c.Exec(env, cid, payload)
	case types.EntrypointApply:
		err = c.Apply(env, cid, payload)
	default:
		err = NewError(Internal, "未知入口类型: %s", kind)
	}
	if err != nil {
		env.Msg(fmt.Sprintf("[%s] %s: %v", kind, CodeOf(err), err))
	}
	return err
}

// Dispatcher 宿主唯一依赖的入口边界
type Dispatcher struct {
	registry *Registry
	logger   log.Logger
}

// NewDispatcher 创建分发器；logger 可以为 nil
func NewDispatcher(registry *Registry, logger log.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger}
}

// Registry 返回路由表
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Invoke 按合约标识与入口类型分发一次宿主调用
func (d *Dispatcher) Invoke(env contract.Env, kind types.EntrypointKind, cid types.ContractID, payload []byte) error {
	c, err := d.registry.Lookup(cid)
	if err != nil {
		env.Msg(fmt.Sprintf("[%s] %v", kind, err))
		d.logFailure(kind, cid, err)
		return err
	}
	if err := Route(env, c, kind, cid, payload); err != nil {
		d.logFailure(kind, cid, err)
		return err
	}
	return nil
}

// Init 部署入口
func (d *Dispatcher) Init(env contract.Env, cid types.ContractID, payload []byte) error {
	return d.Invoke(env, types.EntrypointInit, cid, payload)
}

// Prepare 在尚未登记的合约实例上运行 init，部署与重新部署时使用
func (d *Dispatcher) Prepare(env contract.Env, c contract.Contract, cid types.ContractID, payload []byte) error {
	if err := Route(env, c, types.EntrypointInit, cid, payload); err != nil {
		d.logFailure(types.EntrypointInit, cid, err)
		return err
	}
	return nil
}

// Metadata 元数据入口
func (d *Dispatcher) Metadata(env contract.Env, cid types.ContractID, payload []byte) error {
	return d.Invoke(env, types.EntrypointMetadata, cid, payload)
}

// Exec 指令处理入口
func (d *Dispatcher) Exec(env contract.Env, cid types.ContractID, payload []byte) error {
	return d.Invoke(env, types.EntrypointExec, cid, payload)
}

// Apply 状态应用入口
func (d *Dispatcher) Apply(env contract.Env, cid types.ContractID, payload []byte) error {
	return d.Invoke(env, types.EntrypointApply, cid, payload)
}

func (d *Dispatcher) logFailure(kind types.EntrypointKind, cid types.ContractID, err error) {
	if d.logger == nil {
		return
	}
	d.logger.Warnf("合约入口失败: entrypoint=%s contract=%s code=%s err=%v", kind, cid, CodeOf(err), err)
}

var _ contract.Contract = (*Dispatcher)(nil)
