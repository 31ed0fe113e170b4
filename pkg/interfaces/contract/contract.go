// Package contract 定义合约模块与宿主之间的能力契约
//
// 宿主服务（日志通道、返回缓冲区、数据库句柄）以显式参数 Env 传入每个入口，
// 不依赖全局状态，测试时可直接替换为假实现。
package contract

import (
	"context"

	"github.com/weisyn/hellocontract/pkg/types"
)

// Env 单次入口调用期间宿主提供的服务
type Env interface {
	// Context 宿主调用上下文（用于取消 WASM 执行；原生合约可以忽略）
	Context() context.Context

	// Msg 向宿主日志通道写入诊断消息
	Msg(msg string)

	// SetReturnData 写入返回缓冲区；每次调用最多写一次
	SetReturnData(data []byte) error

	// DB 合约数据库
	DB() Database
}

// DbHandle 数据库树句柄，由 Database.Init / Database.Lookup 分配
type DbHandle uint32

// Database 合约数据库协作者
//
// 各阶段的权限由宿主执行：
//   - init:     Init / Lookup / 读 / Set / Del
//   - metadata: Lookup / 读
//   - exec:     Lookup / 读
//   - apply:    Lookup / 读 / Set / Del
type Database interface {
	// Init 创建（或打开已存在的）合约树
	Init(cid types.ContractID, tree string) (DbHandle, error)

	// Lookup 打开已存在的合约树
	Lookup(cid types.ContractID, tree string) (DbHandle, error)

	// Get 读取键值；键不存在时返回 (nil, nil)
	Get(h DbHandle, key []byte) ([]byte, error)

	// ContainsKey 检查键是否存在
	ContainsKey(h DbHandle, key []byte) (bool, error)

	// Set 写入键值
	Set(h DbHandle, key, value []byte) error

	// Del 删除键
	Del(h DbHandle, key []byte) error
}

// Contract 宿主可调用的四个入口
type Contract interface {
	// Init 部署时调用一次，准备持久化 schema
	Init(env Env, cid types.ContractID, payload []byte) error

	// Metadata 返回宿主需要验证的 zk 公开输入与签名公钥
	Metadata(env Env, cid types.ContractID, payload []byte) error

	// Exec 处理指令并返回 StateUpdate
	Exec(env Env, cid types.ContractID, payload []byte) error

	// Apply 提交已通过验证的 StateUpdate
	Apply(env Env, cid types.ContractID, payload []byte) error
}
