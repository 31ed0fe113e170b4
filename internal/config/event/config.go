package event

import "github.com/weisyn/hellocontract/pkg/types"

// EventOptions 事件总线配置选项
type EventOptions struct {
	Enabled bool `json:"enabled"` // 是否启用事件总线
}

// Config 事件总线配置实现
type Config struct {
	options *EventOptions
}

// New 创建事件配置；userConfig 为 *types.UserEventConfig 时覆盖默认值
func New(userConfig interface{}) *Config {
	options := &EventOptions{Enabled: defaultEnabled}
	if cfg, ok := userConfig.(*types.UserEventConfig); ok && cfg != nil {
		if cfg.Enabled != nil {
			options.Enabled = *cfg.Enabled
		}
	}
	return &Config{options: options}
}

// NewFromOptions 从完整选项创建配置
func NewFromOptions(options *EventOptions) *Config {
	if options == nil {
		options = &EventOptions{Enabled: defaultEnabled}
	}
	return &Config{options: options}
}

// GetOptions 获取完整的配置选项
func (c *Config) GetOptions() *EventOptions {
	return c.options
}

// IsEnabled 事件总线是否启用
func (c *Config) IsEnabled() bool {
	return c != nil && c.options.Enabled
}
