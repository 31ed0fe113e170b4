package memory

import "time"

// 内存缓存默认配置值
const (
	// defaultMaxEntries 编译标记条目数上限
	defaultMaxEntries = 1024

	// defaultMaxEntrySize 单条目大小上限（字节）
	defaultMaxEntrySize = 4 * 1024

	// defaultDefaultTTL 条目生命周期
	defaultDefaultTTL = time.Hour

	// defaultCleanupInterval 清理间隔
	defaultCleanupInterval = 10 * time.Minute

	// defaultShards 分片数（必须是2的幂）
	defaultShards = 64
)
