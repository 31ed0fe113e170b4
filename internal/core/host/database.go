package host

import (
	"context"
	"fmt"
	"sort"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/hellocontract/pkg/types"
)

// 键布局
//
//	t/ + cid + name                    树登记
//	d/ + cid + len(name) + name + key  树内数据
//	c/ + cid                           部署记录（见 bytecode.go）
var (
	treePrefix     = []byte("t/")
	dataPrefix     = []byte("d/")
	contractPrefix = []byte("c/")
)

// MaxTreeNameLength 树名最大长度（长度前缀为单字节）
const MaxTreeNameLength = 255

func treeKey(cid types.ContractID, name string) []byte {
	k := make([]byte, 0, len(treePrefix)+types.ContractIDLength+len(name))
	k = append(k, treePrefix...)
	k = append(k, cid[:]...)
	return append(k, name...)
}

func dataKey(cid types.ContractID, name string, key []byte) []byte {
	k := make([]byte, 0, len(dataPrefix)+types.ContractIDLength+1+len(name)+len(key))
	k = append(k, dataPrefix...)
	k = append(k, cid[:]...)
	k = append(k, byte(len(name)))
	k = append(k, name...)
	return append(k, key...)
}

type overlayEntry struct {
	value   []byte
	deleted bool
}

// StateDB 单笔交易的合约状态
//
// 读取先查覆盖层再查底层存储；所有写入停留在覆盖层，
// Commit 时在一个 Badger 事务里按键序落盘，Discard 丢弃全部写入。
// 不是并发安全的，一笔交易同一时刻只有一个入口在执行。
type StateDB struct {
	store   storage.BadgerStore
	overlay map[string]overlayEntry
}

// NewStateDB 在存储之上创建交易状态
func NewStateDB(store storage.BadgerStore) *StateDB {
	return &StateDB{store: store, overlay: make(map[string]overlayEntry)}
}

func (s *StateDB) get(ctx context.Context, key []byte) ([]byte, error) {
	if e, ok := s.overlay[string(key)]; ok {
		if e.deleted {
			return nil, nil
		}
		return append([]byte{}, e.value...), nil
	}
	v, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, abi.WrapError(abi.Internal, err, "读取状态失败")
	}
	return v, nil
}

func (s *StateDB) exists(ctx context.Context, key []byte) (bool, error) {
	if e, ok := s.overlay[string(key)]; ok {
		return !e.deleted, nil
	}
	ok, err := s.store.Exists(ctx, key)
	if err != nil {
		return false, abi.WrapError(abi.Internal, err, "读取状态失败")
	}
	return ok, nil
}

func (s *StateDB) put(key, value []byte) {
	s.overlay[string(key)] = overlayEntry{value: append([]byte{}, value...)}
}

func (s *StateDB) del(key []byte) {
	s.overlay[string(key)] = overlayEntry{deleted: true}
}

// Pending 覆盖层中待提交的键数
func (s *StateDB) Pending() int {
	return len(s.overlay)
}

// Commit 原子提交覆盖层
func (s *StateDB) Commit(ctx context.Context) error {
	if len(s.overlay) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.overlay))
	for k := range s.overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	err := s.store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		for _, k := range keys {
			e := s.overlay[k]
			if e.deleted {
				if err := tx.Delete([]byte(k)); err != nil {
					return err
				}
				continue
			}
			if err := tx.Set([]byte(k), e.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return abi.WrapError(abi.Internal, err, "提交状态失败")
	}
	s.overlay = make(map[string]overlayEntry)
	return nil
}

// Discard 丢弃覆盖层
func (s *StateDB) Discard() {
	s.overlay = make(map[string]overlayEntry)
}

// View 为某合约的某个入口创建数据库视图
func (s *StateDB) View(ctx context.Context, cid types.ContractID, kind types.EntrypointKind) *DBView {
	if ctx == nil {
		ctx = context.Background()
	}
	return &DBView{state: s, ctx: ctx, cid: cid, kind: kind}
}

type treeRef struct {
	cid  types.ContractID
	name string
}

// DBView 单个入口调用看到的合约数据库
//
// 句柄只在本视图内有效。写操作只能作用于调用方自己的树。
type DBView struct {
	state   *StateDB
	ctx     context.Context
	cid     types.ContractID
	kind    types.EntrypointKind
	handles []treeRef
}

var _ contract.Database = (*DBView)(nil)

func (v *DBView) openHandle(ref treeRef) contract.DbHandle {
	v.handles = append(v.handles, ref)
	return contract.DbHandle(len(v.handles) - 1)
}

func (v *DBView) handle(h contract.DbHandle) (treeRef, error) {
	if int(h) >= len(v.handles) {
		return treeRef{}, abi.NewError(abi.Internal, "无效的数据库句柄 %d", h)
	}
	return v.handles[h], nil
}

// writable init 与 apply 阶段可以写入调用方自己的树
func (v *DBView) writable(ref treeRef, op string) error {
	if v.kind != types.EntrypointInit && v.kind != types.EntrypointApply {
		return abi.NewError(abi.Internal, "%s 不允许在 %s 阶段调用", op, v.kind)
	}
	if ref.cid != v.cid {
		return abi.NewError(abi.Internal, "%s 不能写入其他合约的树", op)
	}
	return nil
}

func checkTreeName(name string) error {
	if name == "" || len(name) > MaxTreeNameLength {
		return abi.NewError(abi.Internal, "树名长度无效: %d", len(name))
	}
	return nil
}

// Init 创建（或打开已存在的）合约树，只允许在 init 阶段由合约自身调用
func (v *DBView) Init(cid types.ContractID, tree string) (contract.DbHandle, error) {
	if v.kind != types.EntrypointInit {
		return 0, abi.NewError(abi.Internal, "db_init 不允许在 %s 阶段调用", v.kind)
	}
	if cid != v.cid {
		return 0, abi.NewError(abi.Internal, "db_init 不能为其他合约创建树")
	}
	if err := checkTreeName(tree); err != nil {
		return 0, err
	}
	v.state.put(treeKey(cid, tree), []byte{1})
	return v.openHandle(treeRef{cid: cid, name: tree}), nil
}

// Lookup 打开已存在的树；可以打开其他合约的树用于只读。树不存在时错误包装 abi.ErrTreeNotFound
func (v *DBView) Lookup(cid types.ContractID, tree string) (contract.DbHandle, error) {
	if err := checkTreeName(tree); err != nil {
		return 0, err
	}
	ok, err := v.state.exists(v.ctx, treeKey(cid, tree))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, abi.WrapError(abi.Internal, abi.ErrTreeNotFound, fmt.Sprintf("打开树 %s/%s 失败", cid, tree))
	}
	return v.openHandle(treeRef{cid: cid, name: tree}), nil
}

// Get 读取键值；键不存在时返回 (nil, nil)
func (v *DBView) Get(h contract.DbHandle, key []byte) ([]byte, error) {
	ref, err := v.handle(h)
	if err != nil {
		return nil, err
	}
	return v.state.get(v.ctx, dataKey(ref.cid, ref.name, key))
}

// ContainsKey 检查键是否存在
func (v *DBView) ContainsKey(h contract.DbHandle, key []byte) (bool, error) {
	ref, err := v.handle(h)
	if err != nil {
		return false, err
	}
	return v.state.exists(v.ctx, dataKey(ref.cid, ref.name, key))
}

// Set 写入键值，只允许在 init 与 apply 阶段
func (v *DBView) Set(h contract.DbHandle, key, value []byte) error {
	ref, err := v.handle(h)
	if err != nil {
		return err
	}
	if err := v.writable(ref, "db_set"); err != nil {
		return err
	}
	v.state.put(dataKey(ref.cid, ref.name, key), value)
	return nil
}

// Del 删除键，只允许在 init 与 apply 阶段
func (v *DBView) Del(h contract.DbHandle, key []byte) error {
	ref, err := v.handle(h)
	if err != nil {
		return err
	}
	if err := v.writable(ref, "db_del"); err != nil {
		return err
	}
	v.state.del(dataKey(ref.cid, ref.name, key))
	return nil
}
