package hello

import (
	"errors"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

// InfoTree 合约部署时创建的信息树
const InfoTree = "info"

// Contract Hello 合约
//
// 无内部状态，所有宿主服务都通过 Env 传入。
type Contract struct{}

// New 创建 Hello 合约
func New() *Contract {
	return &Contract{}
}

// Init 准备合约的持久化 schema；重复部署时打开已存在的树
func (c *Contract) Init(env contract.Env, cid types.ContractID, _ []byte) error {
	db := env.DB()
	if db == nil {
		return nil
	}
	_, err := db.Lookup(cid, InfoTree)
	if err == nil {
		return nil
	}
	if !errors.Is(err, abi.ErrTreeNotFound) {
		return err
	}
	_, err = db.Init(cid, InfoTree)
	return err
}

// Metadata 见 metadata.go
func (c *Contract) Metadata(env contract.Env, cid types.ContractID, payload []byte) error {
	return getMetadata(env, cid, payload)
}

// Exec 见 process.go
func (c *Contract) Exec(env contract.Env, cid types.ContractID, payload []byte) error {
	return processInstruction(env, cid, payload)
}

// Apply 见 apply.go
func (c *Contract) Apply(env contract.Env, cid types.ContractID, payload []byte) error {
	return processUpdate(env, cid, payload)
}

var _ contract.Contract = (*Contract)(nil)
