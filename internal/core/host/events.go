package host

import (
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/hellocontract/pkg/types"
)

// 宿主发布的事件主题
const (
	// EventContractDeployed 部署提交后发布，参数 *ContractDeployedEvent
	EventContractDeployed event.EventType = "host.contract.deployed"
	// EventTransactionCommitted 交易提交后发布，参数 *Receipt
	EventTransactionCommitted event.EventType = "host.transaction.committed"
	// EventTransactionRejected 交易被拒绝后发布，参数 *ExecutionError
	EventTransactionRejected event.EventType = "host.transaction.rejected"
)

// ContractDeployedEvent 部署事件载荷
type ContractDeployedEvent struct {
	ContractID types.ContractID
	Kind       ContractKind
	Name       string
	Redeployed bool
}

// publisher 可选的事件发布，总线为空时什么也不做
type publisher struct {
	bus event.EventBus
}

func (p *publisher) publish(eventType event.EventType, args ...interface{}) {
	if p.bus != nil {
		p.bus.Publish(eventType, args...)
	}
}
