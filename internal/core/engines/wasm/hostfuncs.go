package wasm

import (
	"context"
	"errors"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

// 宿主函数返回值约定
//
//	>= 0   成功（db_get 返回值长度，db_init/db_lookup 返回句柄，db_contains_key 返回 0/1）
//	-1000  db_get 键不存在，db_lookup 树不存在
//	< 0    其余失败，取反后为错误码
const (
	hostOK       int64 = 0
	hostNotFound int64 = -1000
)

type envKey struct{}

// withEnv 把本次调用的 Env 放入上下文，宿主函数据此取得宿主服务
func withEnv(ctx context.Context, env contract.Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

func envFrom(ctx context.Context) (contract.Env, bool) {
	env, ok := ctx.Value(envKey{}).(contract.Env)
	return env, ok && env != nil
}

func failure(err error) int64 {
	return -int64(abi.CodeOf(err))
}

var internalFailure = -int64(abi.Internal)

func read(mod api.Module, ptr, size uint32) ([]byte, bool) {
	b, ok := mod.Memory().Read(ptr, size)
	if !ok {
		return nil, false
	}
	return append([]byte{}, b...), true
}

func readCID(mod api.Module, ptr uint32) (types.ContractID, bool) {
	var cid types.ContractID
	b, ok := mod.Memory().Read(ptr, types.ContractIDLength)
	if !ok {
		return cid, false
	}
	copy(cid[:], b)
	return cid, true
}

// registerHostFunctions 实例化 env 宿主模块
func registerHostFunctions(ctx context.Context, rt wazero.Runtime) error {
	_, err := rt.NewHostModuleBuilder(HostModule).
		NewFunctionBuilder().WithFunc(hostSetReturnData).Export("set_return_data").
		NewFunctionBuilder().WithFunc(hostMsg).Export("msg").
		NewFunctionBuilder().WithFunc(hostDBInit).Export("db_init").
		NewFunctionBuilder().WithFunc(hostDBLookup).Export("db_lookup").
		NewFunctionBuilder().WithFunc(hostDBGet).Export("db_get").
		NewFunctionBuilder().WithFunc(hostDBContainsKey).Export("db_contains_key").
		NewFunctionBuilder().WithFunc(hostDBSet).Export("db_set").
		NewFunctionBuilder().WithFunc(hostDBDel).Export("db_del").
		Instantiate(ctx)
	return err
}

func hostSetReturnData(ctx context.Context, mod api.Module, ptr, size uint32) int64 {
	env, ok := envFrom(ctx)
	if !ok {
		return internalFailure
	}
	data, ok := read(mod, ptr, size)
	if !ok {
		return internalFailure
	}
	if err := env.SetReturnData(data); err != nil {
		return failure(err)
	}
	return hostOK
}

func hostMsg(ctx context.Context, mod api.Module, ptr, size uint32) {
	env, ok := envFrom(ctx)
	if !ok {
		return
	}
	if data, ok := read(mod, ptr, size); ok {
		env.Msg(string(data))
	}
}

func openTree(ctx context.Context, mod api.Module, cidPtr, namePtr, nameLen uint32, init bool) int64 {
	env, ok := envFrom(ctx)
	if !ok || env.DB() == nil {
		return internalFailure
	}
	cid, ok := readCID(mod, cidPtr)
	if !ok {
		return internalFailure
	}
	name, ok := read(mod, namePtr, nameLen)
	if !ok {
		return internalFailure
	}
	var h contract.DbHandle
	var err error
	if init {
		h, err = env.DB().Init(cid, string(name))
	} else {
		h, err = env.DB().Lookup(cid, string(name))
	}
	if errors.Is(err, abi.ErrTreeNotFound) {
		return hostNotFound
	}
	if err != nil {
		return failure(err)
	}
	return int64(h)
}

func hostDBInit(ctx context.Context, mod api.Module, cidPtr, namePtr, nameLen uint32) int64 {
	return openTree(ctx, mod, cidPtr, namePtr, nameLen, true)
}

func hostDBLookup(ctx context.Context, mod api.Module, cidPtr, namePtr, nameLen uint32) int64 {
	return openTree(ctx, mod, cidPtr, namePtr, nameLen, false)
}

// hostDBGet 值长度超过 outCap 时只返回长度，调用方扩大缓冲区后重试
func hostDBGet(ctx context.Context, mod api.Module, h, keyPtr, keyLen, outPtr, outCap uint32) int64 {
	env, ok := envFrom(ctx)
	if !ok || env.DB() == nil {
		return internalFailure
	}
	key, ok := read(mod, keyPtr, keyLen)
	if !ok {
		return internalFailure
	}
	value, err := env.DB().Get(contract.DbHandle(h), key)
	if err != nil {
		return failure(err)
	}
	if value == nil {
		return hostNotFound
	}
	if uint32(len(value)) <= outCap {
		if !mod.Memory().Write(outPtr, value) {
			return internalFailure
		}
	}
	return int64(len(value))
}

func hostDBContainsKey(ctx context.Context, mod api.Module, h, keyPtr, keyLen uint32) int64 {
	env, ok := envFrom(ctx)
	if !ok || env.DB() == nil {
		return internalFailure
	}
	key, ok := read(mod, keyPtr, keyLen)
	if !ok {
		return internalFailure
	}
	found, err := env.DB().ContainsKey(contract.DbHandle(h), key)
	if err != nil {
		return failure(err)
	}
	if found {
		return 1
	}
	return 0
}

func hostDBSet(ctx context.Context, mod api.Module, h, keyPtr, keyLen, valPtr, valLen uint32) int64 {
	env, ok := envFrom(ctx)
	if !ok || env.DB() == nil {
		return internalFailure
	}
	key, ok := read(mod, keyPtr, keyLen)
	if !ok {
		return internalFailure
	}
	value, ok := read(mod, valPtr, valLen)
	if !ok {
		return internalFailure
	}
	if err := env.DB().Set(contract.DbHandle(h), key, value); err != nil {
		return failure(err)
	}
	return hostOK
}

func hostDBDel(ctx context.Context, mod api.Module, h, keyPtr, keyLen uint32) int64 {
	env, ok := envFrom(ctx)
	if !ok || env.DB() == nil {
		return internalFailure
	}
	key, ok := read(mod, keyPtr, keyLen)
	if !ok {
		return internalFailure
	}
	if err := env.DB().Del(contract.DbHandle(h), key); err != nil {
		return failure(err)
	}
	return hostOK
}
