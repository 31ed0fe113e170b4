package host

import (
	"context"
	"sync"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	infralog "github.com/weisyn/hellocontract/internal/core/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/hellocontract/pkg/types"
)

// CodeLoader 从字节码构造合约（WASM 引擎实现）
type CodeLoader interface {
	Load(ctx context.Context, cid types.ContractID, code []byte) (contract.Contract, error)
}

// NativeFactory 原生合约构造函数
type NativeFactory func() contract.Contract

// ContractRegistry 合约部署与恢复
//
// 部署时在新实例上运行 init 入口，init 的写入与部署记录在同一个事务里提交，
// 提交成功后才登记到分发器。已部署的标识可以重新部署：部署记录被替换，
// 分发器中的旧实例在提交前保持不变。init 失败则不留下任何状态。
type ContractRegistry struct {
	mu         sync.Mutex
	deploying  sync.Mutex
	dispatcher *abi.Dispatcher
	store      storage.BadgerStore
	loader     CodeLoader
	natives    map[string]NativeFactory
	logger     log.Logger
	contracts  log.Logger
	metrics    *Metrics
	events     publisher
}

// NewContractRegistry 创建注册表；loader 为 nil 时不支持 WASM 合约，logger 与 metrics 可以为 nil
func NewContractRegistry(dispatcher *abi.Dispatcher, store storage.BadgerStore, loader CodeLoader, logger log.Logger, metrics *Metrics) *ContractRegistry {
	return &ContractRegistry{
		dispatcher: dispatcher,
		store:      store,
		loader:     loader,
		natives:    make(map[string]NativeFactory),
		logger:     infralog.NewModuleLogger(logger, infralog.ModuleHost),
		contracts:  infralog.NewModuleLogger(logger, infralog.ModuleContract),
		metrics:    metrics,
	}
}

// SetEventBus 设置部署事件的发布目标
func (r *ContractRegistry) SetEventBus(bus event.EventBus) {
	r.events.bus = bus
}

// RegisterNative 登记原生合约构造函数
func (r *ContractRegistry) RegisterNative(name string, factory NativeFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.natives[name] = factory
}

// DeployNative 以名称部署原生合约
func (r *ContractRegistry) DeployNative(ctx context.Context, cid types.ContractID, name string, initPayload []byte) error {
	r.mu.Lock()
	factory, ok := r.natives[name]
	r.mu.Unlock()
	if !ok {
		return abi.NewError(abi.Internal, "未登记的原生合约: %s", name)
	}
	return r.deploy(ctx, cid, factory(), DeployRecord{Kind: KindNative, Name: name}, initPayload)
}

// DeployWASM 部署 WASM 合约，字节码压缩后随部署记录保存
func (r *ContractRegistry) DeployWASM(ctx context.Context, cid types.ContractID, code []byte, initPayload []byte) error {
	if r.loader == nil {
		return abi.NewError(abi.Internal, "未配置执行引擎")
	}
	c, err := r.loader.Load(ctx, cid, code)
	if err != nil {
		return err
	}
	return r.deploy(ctx, cid, c, DeployRecord{Kind: KindWASM, Code: code}, initPayload)
}

func (r *ContractRegistry) deploy(ctx context.Context, cid types.ContractID, c contract.Contract, rec DeployRecord, initPayload []byte) error {
	r.deploying.Lock()
	defer r.deploying.Unlock()

	redeploy, err := r.store.Exists(ctx, contractKey(cid))
	if err != nil {
		return abi.WrapError(abi.Internal, err, "读取部署记录失败")
	}

	state := NewStateDB(r.store)
	defer state.Discard()

	env := NewCallEnv(ctx, cid, types.EntrypointInit, r.contracts, state.View(ctx, cid, types.EntrypointInit))
	err = r.dispatcher.Prepare(env, c, cid, initPayload)
	r.metrics.ObserveEntrypoint(types.EntrypointInit, err)
	if err != nil {
		return err
	}
	encoded, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	state.put(contractKey(cid), encoded)
	if err := state.Commit(ctx); err != nil {
		return err
	}
	if err := r.dispatcher.Registry().Replace(cid, c); err != nil {
		return err
	}

	r.logger.Infof("合约已部署: contract=%s kind=%s redeploy=%v", cid, rec.Kind, redeploy)
	r.events.publish(EventContractDeployed, &ContractDeployedEvent{ContractID: cid, Kind: rec.Kind, Name: rec.Name, Redeployed: redeploy})
	return nil
}

// Restore 从存储恢复全部已部署合约到分发器，返回恢复数量
func (r *ContractRegistry) Restore(ctx context.Context) (int, error) {
	records, err := r.store.PrefixScan(ctx, contractPrefix)
	if err != nil {
		return 0, abi.WrapError(abi.Internal, err, "扫描部署记录失败")
	}
	restored := 0
	for key, raw := range records {
		cid, err := types.ContractIDFromBytes([]byte(key)[len(contractPrefix):])
		if err != nil {
			return restored, abi.WrapError(abi.Internal, err, "部署记录键无效")
		}
		if _, err := r.dispatcher.Registry().Lookup(cid); err == nil {
			continue
		}
		rec, err := decodeRecord(raw)
		if err != nil {
			return restored, err
		}
		c, err := r.instantiate(ctx, cid, rec)
		if err != nil {
			return restored, err
		}
		if err := r.dispatcher.Registry().Register(cid, c); err != nil {
			return restored, err
		}
		restored++
	}
	return restored, nil
}

// Record 读取部署记录
func (r *ContractRegistry) Record(ctx context.Context, cid types.ContractID) (DeployRecord, error) {
	raw, err := r.store.Get(ctx, contractKey(cid))
	if err != nil {
		return DeployRecord{}, abi.WrapError(abi.Internal, err, "读取部署记录失败")
	}
	if raw == nil {
		return DeployRecord{}, abi.NewError(abi.Internal, "合约未部署: %s", cid)
	}
	return decodeRecord(raw)
}

func (r *ContractRegistry) instantiate(ctx context.Context, cid types.ContractID, rec DeployRecord) (contract.Contract, error) {
	switch rec.Kind {
	case KindNative:
		r.mu.Lock()
		factory, ok := r.natives[rec.Name]
		r.mu.Unlock()
		if !ok {
			return nil, abi.NewError(abi.Internal, "未登记的原生合约: %s", rec.Name)
		}
		return factory(), nil
	case KindWASM:
		if r.loader == nil {
			return nil, abi.NewError(abi.Internal, "未配置执行引擎")
		}
		return r.loader.Load(ctx, cid, rec.Code)
	default:
		return nil, abi.NewError(abi.Internal, "未知合约类型: %s", rec.Kind)
	}
}
