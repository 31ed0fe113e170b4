// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径

	// 存储配置
	Storage *UserStorageConfig `json:"storage,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// 合约执行引擎配置
	Engine *UserEngineConfig `json:"engine,omitempty"`

	// 事件总线配置
	Event *UserEventConfig `json:"event,omitempty"`
}

// UserStorageConfig 用户存储配置
// 只包含 JSON 配置文件中实际出现的字段。
type UserStorageConfig struct {
	DataRoot   *string `json:"data_root,omitempty"`   // 数据根目录（data_root）
	SyncWrites *bool   `json:"sync_writes,omitempty"` // 是否同步写入
	InMemory   *bool   `json:"in_memory,omitempty"`   // 是否使用内存数据库（测试/开发）
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
}

// UserEngineConfig 用户执行引擎配置
type UserEngineConfig struct {
	UseCompiler    *bool   `json:"use_compiler,omitempty"`     // wazero 编译器模式
	MaxMemoryPages *uint32 `json:"max_memory_pages,omitempty"` // 合约内存上限（页，64KB/页）
	CallTimeout    *string `json:"call_timeout,omitempty"`     // 单次入口调用超时，如 "5s"
}

// UserEventConfig 用户事件总线配置
type UserEventConfig struct {
	Enabled *bool `json:"enabled,omitempty"` // 是否启用部署/执行事件
}

// StringPtr 返回字符串指针
func StringPtr(v string) *string {
	return &v
}

// BoolPtr 返回布尔指针
func BoolPtr(v bool) *bool {
	return &v
}

// Uint32Ptr 返回uint32指针
func Uint32Ptr(v uint32) *uint32 {
	return &v
}
