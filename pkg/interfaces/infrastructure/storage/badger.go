// Package storage 提供BadgerDB存储接口定义
//
// 合约数据库（树、键值、原子提交）建立在该接口之上；
// 具体实现位于 internal/core/infrastructure/storage/badger。
package storage

import (
	"context"
)

// BadgerStore BadgerDB键值存储
type BadgerStore interface {
	// Close 关闭存储并释放资源
	Close() error

	// Get 获取键值；键不存在时返回 (nil, nil)
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set 写入键值
	Set(ctx context.Context, key, value []byte) error

	// Delete 删除键
	Delete(ctx context.Context, key []byte) error

	// Exists 检查键是否存在
	Exists(ctx context.Context, key []byte) (bool, error)

	// PrefixScan 按前缀扫描，返回 key(string) -> value
	PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error)

	// RunInTransaction 在单个读写事务中执行 fn；fn 返回错误时整个事务丢弃
	RunInTransaction(ctx context.Context, fn func(tx BadgerTransaction) error) error
}

// BadgerTransaction 事务内的键值操作
type BadgerTransaction interface {
	Get(key []byte) ([]byte, error)

	Set(key, value []byte) error

	Delete(key []byte) error

	Exists(key []byte) (bool, error)
}
