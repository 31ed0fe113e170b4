package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/weisyn/hellocontract/pkg/types"
)

// LoadAppConfig 从JSON文件加载应用配置；path 为空时返回空配置（全部使用默认值）
func LoadAppConfig(path string) (*types.AppConfig, error) {
	if path == "" {
		return &types.AppConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return ParseAppConfig(data)
}

// ParseAppConfig 解析JSON配置内容
func ParseAppConfig(data []byte) (*types.AppConfig, error) {
	var cfg types.AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return &cfg, nil
}
