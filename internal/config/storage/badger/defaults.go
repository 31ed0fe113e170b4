package badger

import (
	"github.com/weisyn/hellocontract/pkg/utils"
)

// getDefaultPath 获取默认数据库路径
func getDefaultPath() string {
	return utils.ResolveDataPath("./data/badger")
}

const (
	// defaultSyncWrites 默认同步写入，合约状态提交需要持久化保证
	defaultSyncWrites = true

	// defaultInMemory 默认使用磁盘
	defaultInMemory = false

	// defaultMemTableSize 内存表大小 64MB
	defaultMemTableSize = 64 << 20

	// defaultEnableAutoCompaction 默认启用自动压缩
	defaultEnableAutoCompaction = true
)
