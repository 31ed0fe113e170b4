package abi

import (
	"sync"

	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

// Registry 合约标识到合约实现的路由表
type Registry struct {
	mu        sync.RWMutex
	contracts map[types.ContractID]contract.Contract
}

// NewRegistry 创建空路由表
func NewRegistry() *Registry {
	return &Registry{contracts: make(map[types.ContractID]contract.Contract)}
}

// Register 注册合约；同一标识重复注册返回 Internal
func (r *Registry) Register(cid types.ContractID, c contract.Contract) error {
	if c == nil {
		return NewError(Internal, "合约实现为空: %s", cid)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.contracts[cid]; exists {
		return NewError(Internal, "合约已注册: %s", cid)
	}
	r.contracts[cid] = c
	return nil
}

// Replace 注册或替换合约；重新部署提交成功后使用
func (r *Registry) Replace(cid types.ContractID, c contract.Contract) error {
	if c == nil {
		return NewError(Internal, "合约实现为空: %s", cid)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts[cid] = c
	return nil
}

// Unregister 移除合约
func (r *Registry) Unregister(cid types.ContractID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contracts, cid)
}

// Lookup 查找合约；未知标识返回 Internal
func (r *Registry) Lookup(cid types.ContractID) (contract.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contracts[cid]
	if !ok {
		return nil, NewError(Internal, "未部署的合约: %s", cid)
	}
	return c, nil
}

// Len 已注册合约数量
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contracts)
}
