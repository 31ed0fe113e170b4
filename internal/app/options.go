package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/hellocontract/pkg/interfaces/config"
	"github.com/weisyn/hellocontract/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径
	configFilePath string

	// 嵌入的配置内容（优先级高于configFilePath）
	embeddedConfig []byte

	// 用户配置（优先级最高）
	appConfig *types.AppConfig

	// 数据目录覆盖
	dataDir string

	// 强制使用内存数据库
	inMemory bool

	// 指标注册表；为空时不导出指标
	registerer prometheus.Registerer
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEmbeddedConfig 设置嵌入的配置内容（优先级高于WithConfigFile）
func WithEmbeddedConfig(configBytes []byte) Option {
	return func(o *options) {
		o.embeddedConfig = configBytes
	}
}

// WithAppConfig 直接使用已构造的配置
func WithAppConfig(cfg *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = cfg
	}
}

// WithDataDir 覆盖配置中的数据目录
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.dataDir = dir
	}
}

// WithInMemoryStorage 使用内存数据库，进程退出后状态丢失
func WithInMemoryStorage() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// WithRegisterer 设置 prometheus 指标注册表
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// resolve 合并配置文件与命令行覆盖项
func (o *options) resolve(load func(string) (*types.AppConfig, error), parse func([]byte) (*types.AppConfig, error)) error {
	if o.appConfig == nil {
		var (
			cfg *types.AppConfig
			err error
		)
		if len(o.embeddedConfig) > 0 {
			cfg, err = parse(o.embeddedConfig)
		} else {
			cfg, err = load(o.configFilePath)
		}
		if err != nil {
			return err
		}
		o.appConfig = cfg
	}
	if o.dataDir != "" {
		dir := o.dataDir
		o.appConfig.DataDir = &dir
	}
	if o.inMemory {
		if o.appConfig.Storage == nil {
			o.appConfig.Storage = &types.UserStorageConfig{}
		}
		inMemory := true
		o.appConfig.Storage.InMemory = &inMemory
	}
	return nil
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
