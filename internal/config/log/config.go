package log

import (
	"path/filepath"

	"go.uber.org/zap/zapcore"

	configtypes "github.com/weisyn/hellocontract/pkg/types"
)

// LogOptions 日志配置选项
type LogOptions struct {
	// === 基础配置 ===
	Level     string `json:"level"`      // 日志级别 (debug, info, warn, error, fatal)
	ToConsole bool   `json:"to_console"` // 是否输出到控制台
	FilePath  string `json:"file_path"`  // 日志文件路径；stdout/stderr 表示不写文件

	// === 基础轮转配置 ===
	MaxSize    int  `json:"max_size"`    // 单个日志文件最大大小(MB)
	MaxBackups int  `json:"max_backups"` // 最大备份文件数
	MaxAge     int  `json:"max_age"`     // 日志文件最大保留天数
	Compress   bool `json:"compress"`    // 是否压缩历史日志文件

	// === 调试配置 ===
	EnableCaller     bool `json:"enable_caller"`
	EnableStacktrace bool `json:"enable_stacktrace"`

	// === 多文件配置 ===
	EnableMultiFile bool   `json:"enable_multi_file"` // 宿主/合约分文件
	HostLogFile     string `json:"host_log_file"`
	ContractLogFile string `json:"contract_log_file"`

	// === 内部配置（不对外暴露） ===
	LevelMap map[string]zapcore.Level `json:"-"`
}

// Config 日志配置实现
type Config struct {
	options *LogOptions
}

// New 创建日志配置
//
// userConfig 可以是 *types.UserLogConfig（覆盖默认值）或完整的 *LogOptions。
func New(userConfig interface{}) *Config {
	if opts, ok := userConfig.(*LogOptions); ok && opts != nil {
		return &Config{options: withDefaults(opts)}
	}

	defaultOptions := createDefaultLogOptions()
	if userConfig != nil {
		applyUserLogConfig(defaultOptions, userConfig)
	}
	return &Config{options: defaultOptions}
}

// NewFromProvider 从配置提供者创建日志配置
func NewFromProvider(provider interface{}) *Config {
	if p, ok := provider.(interface{ GetLog() *LogOptions }); ok {
		return &Config{options: withDefaults(p.GetLog())}
	}
	return New(nil)
}

func createDefaultLogOptions() *LogOptions {
	return &LogOptions{
		Level:            defaultLogLevel,
		ToConsole:        defaultToConsole,
		FilePath:         defaultFilePath,
		MaxSize:          defaultMaxSize,
		MaxBackups:       defaultMaxBackups,
		MaxAge:           defaultMaxAge,
		Compress:         defaultCompress,
		EnableCaller:     defaultEnableCaller,
		EnableStacktrace: defaultEnableStacktrace,
		EnableMultiFile:  defaultEnableMultiFile,
		HostLogFile:      defaultHostLogFile,
		ContractLogFile:  defaultContractLogFile,
		LevelMap:         defaultLevelMap,
	}
}

// withDefaults 为调用方直接构造的选项补齐零值字段
func withDefaults(opts *LogOptions) *LogOptions {
	if opts == nil {
		return createDefaultLogOptions()
	}
	out := *opts
	if out.Level == "" {
		out.Level = defaultLogLevel
	}
	if out.FilePath == "" {
		out.FilePath = defaultFilePath
	}
	if out.HostLogFile == "" {
		out.HostLogFile = defaultHostLogFile
	}
	if out.ContractLogFile == "" {
		out.ContractLogFile = defaultContractLogFile
	}
	if out.LevelMap == nil {
		out.LevelMap = defaultLevelMap
	}
	return &out
}

// applyUserLogConfig 应用用户日志配置覆盖默认值
func applyUserLogConfig(options *LogOptions, userConfig interface{}) {
	if logConfig, ok := userConfig.(*configtypes.UserLogConfig); ok && logConfig != nil {
		if logConfig.Level != nil {
			options.Level = *logConfig.Level
		}
		if logConfig.FilePath != nil {
			options.FilePath = *logConfig.FilePath
			// 指定文件路径时默认不输出到控制台
			if !IsStdStream(options.FilePath) {
				options.ToConsole = false
			}
		}
	}
}

// IsStdStream 判断路径是否表示标准输出流
func IsStdStream(path string) bool {
	return path == "stdout" || path == "stderr"
}

// GetOptions 获取完整的日志配置选项
func (c *Config) GetOptions() *LogOptions {
	return c.options
}

// GetLevel 获取日志级别
func (c *Config) GetLevel() string {
	return c.options.Level
}

// GetZapLevel 获取zap日志级别
func (c *Config) GetZapLevel() zapcore.Level {
	if level, exists := c.options.LevelMap[c.options.Level]; exists {
		return level
	}
	return zapcore.InfoLevel
}

// IsConsoleEnabled 是否启用控制台输出
func (c *Config) IsConsoleEnabled() bool {
	return c.options.ToConsole
}

// GetFilePath 获取日志文件路径
func (c *Config) GetFilePath() string {
	return c.options.FilePath
}

// GetMaxSize 获取单个文件最大大小(MB)
func (c *Config) GetMaxSize() int {
	return c.options.MaxSize
}

// GetMaxBackups 获取最大备份文件数
func (c *Config) GetMaxBackups() int {
	return c.options.MaxBackups
}

// GetMaxAge 获取最大保留天数
func (c *Config) GetMaxAge() int {
	return c.options.MaxAge
}

// IsCompressionEnabled 是否启用压缩
func (c *Config) IsCompressionEnabled() bool {
	return c.options.Compress
}

// IsCallerEnabled 是否启用调用者信息
func (c *Config) IsCallerEnabled() bool {
	return c.options.EnableCaller
}

// IsStacktraceEnabled 是否启用堆栈跟踪
func (c *Config) IsStacktraceEnabled() bool {
	return c.options.EnableStacktrace
}

// IsMultiFileEnabled 是否启用宿主/合约分文件
func (c *Config) IsMultiFileEnabled() bool {
	return c.options.EnableMultiFile
}

// GetHostLogPath 宿主日志文件完整路径
func (c *Config) GetHostLogPath() string {
	return filepath.Join(filepath.Dir(c.options.FilePath), c.options.HostLogFile)
}

// GetContractLogPath 合约日志文件完整路径
func (c *Config) GetContractLogPath() string {
	return filepath.Join(filepath.Dir(c.options.FilePath), c.options.ContractLogFile)
}

// CreateFileEncoder 创建文件编码器（JSON）
func (c *Config) CreateFileEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
	})
}

// CreateConsoleEncoder 创建控制台编码器
func (c *Config) CreateConsoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
	})
}
