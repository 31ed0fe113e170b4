// Package log 提供日志级别接口定义
//
// 级别定义在 pkg/types 中，这里保留别名，使调用方只依赖日志接口包。
package log

import "github.com/weisyn/hellocontract/pkg/types"

// 兼容别名（迁至 pkg/types）
type LogLevel = types.LogLevel

// 常量别名
const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)
