package memory

import "time"

// MemoryOptions 内存缓存配置选项
type MemoryOptions struct {
	MaxEntries      int           `json:"max_entries"`      // 窗口内最大条目数
	MaxEntrySize    int           `json:"max_entry_size"`   // 单条目大小上限
	DefaultTTL      time.Duration `json:"default_ttl"`      // 默认TTL
	CleanupInterval time.Duration `json:"cleanup_interval"` // 清理间隔
	Shards          int           `json:"shards"`           // 分片数
}

// Config 内存缓存配置实现
type Config struct {
	options *MemoryOptions
}

// New 创建内存缓存配置；目前没有用户可覆盖的字段
func New(_ interface{}) *Config {
	return &Config{options: createDefaultMemoryOptions()}
}

// NewFromOptions 从完整选项创建配置
func NewFromOptions(options *MemoryOptions) *Config {
	return &Config{options: options}
}

func createDefaultMemoryOptions() *MemoryOptions {
	return &MemoryOptions{
		MaxEntries:      defaultMaxEntries,
		MaxEntrySize:    defaultMaxEntrySize,
		DefaultTTL:      defaultDefaultTTL,
		CleanupInterval: defaultCleanupInterval,
		Shards:          defaultShards,
	}
}

// GetOptions 获取完整的配置选项
func (c *Config) GetOptions() *MemoryOptions {
	return c.options
}

// GetMaxEntries 获取最大条目数
func (c *Config) GetMaxEntries() int {
	return c.options.MaxEntries
}

// GetMaxEntrySize 获取单条目大小上限
func (c *Config) GetMaxEntrySize() int {
	return c.options.MaxEntrySize
}

// GetDefaultTTL 获取默认TTL
func (c *Config) GetDefaultTTL() time.Duration {
	return c.options.DefaultTTL
}

// GetCleanupInterval 获取清理间隔
func (c *Config) GetCleanupInterval() time.Duration {
	return c.options.CleanupInterval
}

// GetShards 获取分片数
func (c *Config) GetShards() int {
	return c.options.Shards
}
