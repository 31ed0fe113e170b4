package wasm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	wasmconfig "github.com/weisyn/hellocontract/internal/config/engine/wasm"
	infralog "github.com/weisyn/hellocontract/internal/core/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/storage"
)

// Runtime 基于 wazero 的合约运行时
//
// env 宿主模块在创建时注册一次，宿主函数从调用 ctx 中取出本次调用的 Env，
// 因此同一运行时可以被任意多个合约、任意多次调用共享。
//
// 已编译模块保存在进程内缓存；MemoryStore 记录每份字节码的导出检查结论，
// 标记命中时 Engine.Load 不再重复检查。
type Runtime struct {
	logger  log.Logger
	config  *wasmconfig.Config
	runtime wazero.Runtime
	cache   storage.MemoryStore

	compiled sync.Map // map[string]wazero.CompiledModule
}

// NewRuntime 创建运行时；config、cache、logger 都可以为 nil
func NewRuntime(ctx context.Context, config *wasmconfig.Config, cache storage.MemoryStore, logger log.Logger) (*Runtime, error) {
	if config == nil {
		config = wasmconfig.New(nil)
	}
	if logger == nil {
		logger = infralog.NewNop()
	}

	var rc wazero.RuntimeConfig
	if config.IsCompilerEnabled() {
		rc = wazero.NewRuntimeConfigCompiler()
	} else {
		rc = wazero.NewRuntimeConfigInterpreter()
	}
	rc = rc.WithCloseOnContextDone(true)
	if pages := config.GetMaxMemoryPages(); pages > 0 {
		rc = rc.WithMemoryLimitPages(pages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, rc)

	// Go 编译的合约（GOOS=wasip1）依赖 WASI，必须先于合约模块实例化
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("WASI模块实例化失败: %w", err)
	}
	if err := registerHostFunctions(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("宿主模块实例化失败: %w", err)
	}

	logger.Debugf("wazero运行时已创建: compiler=%v max_pages=%d", config.IsCompilerEnabled(), config.GetMaxMemoryPages())
	return &Runtime{
		logger:  logger,
		config:  config,
		runtime: rt,
		cache:   cache,
	}, nil
}

// Compile 编译字节码；相同字节码只编译一次
func (r *Runtime) Compile(ctx context.Context, code []byte) (wazero.CompiledModule, error) {
	key := compileCacheKey(code)
	if v, ok := r.compiled.Load(key); ok {
		return v.(wazero.CompiledModule), nil
	}

	cm, err := r.runtime.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompileFailed, err)
	}
	for _, def := range cm.ImportedFunctions() {
		module, name, _ := def.Import()
		r.logger.Debugf("合约导入: [%s] %s", module, name)
	}

	if actual, loaded := r.compiled.LoadOrStore(key, cm); loaded {
		_ = cm.Close(ctx)
		return actual.(wazero.CompiledModule), nil
	}
	return cm, nil
}

// cachedVerdict 读取导出检查结论；没有缓存或标记与当前配置不符时 ok 为 false
func (r *Runtime) cachedVerdict(ctx context.Context, code []byte) (verdict error, ok bool) {
	if r.cache == nil {
		return nil, false
	}
	raw, exists, err := r.cache.Get(ctx, compileCacheKey(code))
	if err != nil || !exists {
		return nil, false
	}
	var marker compileMarker
	if json.Unmarshal(raw, &marker) != nil || !marker.validFor(r.config, code) {
		return nil, false
	}
	if marker.ExportError != "" {
		return fmt.Errorf("%w: %s", ErrMissingExport, marker.ExportError), true
	}
	return nil, true
}

// recordVerdict 记录导出检查结论
func (r *Runtime) recordVerdict(ctx context.Context, code []byte, verdict error) {
	if r.cache == nil {
		return
	}
	marker := newCompileMarker(r.config, code)
	if verdict != nil {
		marker.ExportError = verdict.Error()
	}
	b, err := json.Marshal(marker)
	if err == nil {
		err = r.cache.Set(ctx, compileCacheKey(code), b, r.config.GetCompileCacheTTL())
	}
	if err != nil {
		r.logger.Warnf("写入编译标记失败: %v", err)
	}
}

// instantiate 创建匿名模块实例；每次入口调用使用全新的线性内存
func (r *Runtime) instantiate(ctx context.Context, cm wazero.CompiledModule) (moduleInstance, error) {
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions("_initialize")
	mod, err := r.runtime.InstantiateModule(ctx, cm, cfg)
	if err != nil {
		return moduleInstance{}, fmt.Errorf("%w: %v", ErrInstantiateFailed, err)
	}
	return moduleInstance{mod: mod}, nil
}

// CallTimeout 单次入口调用超时
func (r *Runtime) CallTimeout() time.Duration {
	return r.config.GetCallTimeout()
}

// Close 关闭运行时以及所有已编译模块
func (r *Runtime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

func compileCacheKey(code []byte) string {
	h := sha256.Sum256(code)
	return "wasm_" + hex.EncodeToString(h[:])
}

const markerVersion = 2

// compileMarker 编译标记，不承载模块本体
//
// ExportError 为空表示导出检查通过。
type compileMarker struct {
	Version        int    `json:"version"`
	WasmSHA256     string `json:"wasm_sha256"`
	UseCompiler    bool   `json:"use_compiler"`
	MaxMemoryPages uint32 `json:"max_memory_pages"`
	ExportError    string `json:"export_error,omitempty"`
	CreatedAt      int64  `json:"created_at"`
}

func newCompileMarker(config *wasmconfig.Config, code []byte) compileMarker {
	h := sha256.Sum256(code)
	return compileMarker{
		Version:        markerVersion,
		WasmSHA256:     hex.EncodeToString(h[:]),
		UseCompiler:    config.IsCompilerEnabled(),
		MaxMemoryPages: config.GetMaxMemoryPages(),
		CreatedAt:      time.Now().Unix(),
	}
}

func (m compileMarker) validFor(config *wasmconfig.Config, code []byte) bool {
	h := sha256.Sum256(code)
	return m.Version == markerVersion &&
		m.WasmSHA256 == hex.EncodeToString(h[:]) &&
		m.UseCompiler == config.IsCompilerEnabled() &&
		m.MaxMemoryPages == config.GetMaxMemoryPages()
}
