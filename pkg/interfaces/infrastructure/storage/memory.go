// Package storage 提供内存缓存接口定义
package storage

import (
	"context"
	"time"
)

// MemoryStore 进程内缓存
//
// 执行引擎用它记录已编译模块的校验标记。
type MemoryStore interface {
	// Get 获取缓存值
	Get(ctx context.Context, key string) (value []byte, exists bool, err error)

	// Set 设置缓存值；ttl 为 0 表示使用缓存默认生命周期
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete 删除缓存项
	Delete(ctx context.Context, key string) error

	// Exists 检查缓存项是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// Clear 清空缓存
	Clear(ctx context.Context) error

	// Count 返回缓存项数量
	Count(ctx context.Context) (int64, error)
}
