// Package configs 嵌入各环境的默认配置文件
package configs

import (
	_ "embed"
	"fmt"
)

// 环境名称
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
)

//go:embed development/config.json
var developmentConfig []byte

//go:embed testing/config.json
var testingConfig []byte

// Get 返回指定环境的嵌入配置
func Get(env string) ([]byte, error) {
	switch env {
	case EnvDevelopment:
		return developmentConfig, nil
	case EnvTesting:
		return testingConfig, nil
	default:
		return nil, fmt.Errorf("未知环境: %s", env)
	}
}
