// Package framework 合约侧 SDK：把 env 宿主函数包装为 contract.Env，
// 使同一份合约代码既能作为原生合约运行，也能编译为 WASM 模块。
package framework

import (
	"context"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

// hostNotFound db_get 键不存在，db_lookup 树不存在
const hostNotFound = -1000

// initialGetCap db_get 首次尝试的缓冲区大小
const initialGetCap = 256

// codeError 把宿主返回值转换为错误
func codeError(op string, res int64) error {
	if res >= 0 {
		return nil
	}
	code := abi.ErrorCode(-res)
	if code > abi.Internal {
		code = abi.Internal
	}
	return abi.NewError(code, "宿主函数 %s 返回 %d", op, res)
}

// Env 基于宿主函数的 contract.Env
type Env struct {
	db hostDB
}

var _ contract.Env = (*Env)(nil)

// NewEnv 创建宿主环境
func NewEnv() *Env {
	return &Env{}
}

// Context WASM 内没有可取消的上下文
func (e *Env) Context() context.Context {
	return context.Background()
}

// Msg 写入诊断消息
func (e *Env) Msg(m string) {
	ptr, size := AllocBytes([]byte(m))
	msg(ptr, size)
}

// SetReturnData 写入返回缓冲区
func (e *Env) SetReturnData(data []byte) error {
	ptr, size := AllocBytes(data)
	return codeError("set_return_data", setReturnData(ptr, size))
}

// DB 合约数据库
func (e *Env) DB() contract.Database {
	return &e.db
}

type hostDB struct{}

var _ contract.Database = (*hostDB)(nil)

func (d *hostDB) open(op string, fn func(uint32, uint32, uint32) int64, cid types.ContractID, tree string) (contract.DbHandle, error) {
	cidPtr, _ := AllocBytes(cid[:])
	namePtr, nameLen := AllocBytes([]byte(tree))
	res := fn(cidPtr, namePtr, nameLen)
	if res == hostNotFound {
		return 0, abi.WrapError(abi.Internal, abi.ErrTreeNotFound, "宿主函数 "+op+" 未找到树 "+tree)
	}
	if err := codeError(op, res); err != nil {
		return 0, err
	}
	return contract.DbHandle(res), nil
}

func (d *hostDB) Init(cid types.ContractID, tree string) (contract.DbHandle, error) {
	return d.open("db_init", dbInit, cid, tree)
}

func (d *hostDB) Lookup(cid types.ContractID, tree string) (contract.DbHandle, error) {
	return d.open("db_lookup", dbLookup, cid, tree)
}

func (d *hostDB) Get(h contract.DbHandle, key []byte) ([]byte, error) {
	keyPtr, keyLen := AllocBytes(key)
	capacity := uint32(initialGetCap)
	for {
		out := Alloc(capacity)
		res := dbGet(uint32(h), keyPtr, keyLen, out, capacity)
		if res == hostNotFound {
			return nil, nil
		}
		if err := codeError("db_get", res); err != nil {
			return nil, err
		}
		if uint32(res) <= capacity {
			return append([]byte{}, Bytes(out, uint32(res))...), nil
		}
		capacity = uint32(res)
	}
}

func (d *hostDB) ContainsKey(h contract.DbHandle, key []byte) (bool, error) {
	keyPtr, keyLen := AllocBytes(key)
	res := dbContainsKey(uint32(h), keyPtr, keyLen)
	if err := codeError("db_contains_key", res); err != nil {
		return false, err
	}
	return res == 1, nil
}

func (d *hostDB) Set(h contract.DbHandle, key, value []byte) error {
	keyPtr, keyLen := AllocBytes(key)
	valPtr, valLen := AllocBytes(value)
	return codeError("db_set", dbSet(uint32(h), keyPtr, keyLen, valPtr, valLen))
}

func (d *hostDB) Del(h contract.DbHandle, key []byte) error {
	keyPtr, keyLen := AllocBytes(key)
	return codeError("db_del", dbDel(uint32(h), keyPtr, keyLen))
}
