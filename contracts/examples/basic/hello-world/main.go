//go:build tinygo || wasip1

// Package main 把 Hello 合约编译为 WASM 模块
//
// 构建：
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o hello.wasm ./contracts/examples/basic/hello-world
//
// 导出 alloc 以及四个入口，输入为 cid(32) || payload，返回错误码。
// 入口逻辑与原生合约共用同一份 hello.Contract。
package main

import (
	framework "github.com/weisyn/hellocontract/contracts/sdk/go/framework"
	"github.com/weisyn/hellocontract/internal/core/contract/hello"
	"github.com/weisyn/hellocontract/pkg/types"
)

var contract = hello.New()

//go:wasmexport alloc
func alloc(size uint32) uint32 {
	return framework.Alloc(size)
}

//go:wasmexport __initialize
func initialize(ptr, size uint32) int64 {
	return framework.Run(contract, types.EntrypointInit, ptr, size)
}

//go:wasmexport __metadata
func metadata(ptr, size uint32) int64 {
	return framework.Run(contract, types.EntrypointMetadata, ptr, size)
}

//go:wasmexport __entrypoint
func entrypoint(ptr, size uint32) int64 {
	return framework.Run(contract, types.EntrypointExec, ptr, size)
}

//go:wasmexport __update
func update(ptr, size uint32) int64 {
	return framework.Run(contract, types.EntrypointApply, ptr, size)
}

func main() {}
