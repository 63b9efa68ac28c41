// Package bridge 实现密码学执行桥
//
// 执行桥在启动时异步装载 WASM 加速后端；装载失败时（空字节码、魔数错误、缺少导入、
// 实例化陷入、缺少必需导出）记录告警并启用纯 Go 软件后端。装载只发生一次，
// 一旦就绪后端不再更换，调用错误直接返回给调用方。
//
// 一个 Bridge 实例同一时刻只执行一个调用；需要并行时为每个 worker 创建独立实例。
package bridge

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	bridgeconfig "github.com/weisyn/wasmcrypto/internal/config/bridge"
	"github.com/weisyn/wasmcrypto/internal/core/engines/soft"
	"github.com/weisyn/wasmcrypto/internal/core/engines/wasm/engine"
	logimpl "github.com/weisyn/wasmcrypto/internal/core/infrastructure/log"
	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

// FallbackFactory 构造软件后端
type FallbackFactory func() cryptoif.Module

// Bridge 密码学执行桥
type Bridge struct {
	logger  log.Logger
	options *bridgeconfig.BridgeOptions

	once  sync.Once
	done  chan struct{}
	state atomic.Int32
	kind  atomic.Uint32

	// 以下字段在 mu 保护下由 load 写入，done 关闭后只读
	module  cryptoif.Module
	vm      *engine.VM
	loadErr error

	mu     sync.Mutex
	closed bool
}

var _ cryptoif.Bridge = (*Bridge)(nil)

// Option 执行桥选项
type Option func(*Bridge)

// WithLogger 设置日志记录器
func WithLogger(logger log.Logger) Option {
	return func(b *Bridge) { b.logger = logger }
}

// WithOptions 设置执行桥配置
func WithOptions(options *bridgeconfig.BridgeOptions) Option {
	return func(b *Bridge) {
		if options != nil {
			b.options = options
		}
	}
}

// New 创建未装载的执行桥
func New(opts ...Option) *Bridge {
	b := &Bridge{
		options: bridgeconfig.New(nil).GetOptions(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logimpl.OrNop(b.logger).With("module", "crypto.bridge")
	return b
}

// DefaultFallback 按配置的内存上限构造软件后端
func (b *Bridge) DefaultFallback() FallbackFactory {
	pages := b.options.MemoryLimitPages
	return func() cryptoif.Module {
		return soft.New(soft.WithMaxPages(pages))
	}
}

// Init 启动装载；重复或并发调用共享同一次装载
//
// fallback 为 nil 时使用 DefaultFallback，imports 为 nil 时使用 DefaultImports。
func (b *Bridge) Init(ctx context.Context, wasmBytes []byte, fallback FallbackFactory, imports engine.ImportTable) {
	b.once.Do(func() {
		if fallback == nil {
			fallback = b.DefaultFallback()
		}
		if imports == nil {
			imports = DefaultImports()
		}
		b.state.Store(int32(types.BackendLoading))
		go b.load(ctx, wasmBytes, fallback, imports)
	})
}

// InitAndWait 启动装载并等待结束
func (b *Bridge) InitAndWait(ctx context.Context, wasmBytes []byte, fallback FallbackFactory, imports engine.ImportTable) bool {
	b.Init(ctx, wasmBytes, fallback, imports)
	return b.WaitReady(ctx)
}

// IsReady 后端是否已就绪
func (b *Bridge) IsReady() bool {
	return b.State().Settled()
}

// WaitReady 等待装载结束
func (b *Bridge) WaitReady(ctx context.Context) bool {
	select {
	case <-b.done:
		return true
	case <-ctx.Done():
		return false
	}
}

// State 当前装载状态
func (b *Bridge) State() types.BackendState {
	return types.BackendState(b.state.Load())
}

// Kind 胜出的后端类型；装载结束前为 BackendNone
func (b *Bridge) Kind() types.BackendKind {
	return types.BackendKind(b.kind.Load())
}

// LoadError 加速后端装载失败原因；加速后端胜出或尚未结束时为 nil
func (b *Bridge) LoadError() error {
	if !b.IsReady() {
		return nil
	}
	return b.loadErr
}

// Options 执行桥配置
func (b *Bridge) Options() *bridgeconfig.BridgeOptions {
	return b.options
}

// Close 释放后端与运行时
//
// 装载尚未结束时只标记关闭，由装载结束时释放其装入的后端。
func (b *Bridge) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if !b.IsReady() {
		return nil
	}
	return b.releaseLocked(ctx)
}

func (b *Bridge) releaseLocked(ctx context.Context) error {
	var err error
	if b.module != nil {
		err = b.module.Close(ctx)
	}
	if b.vm != nil {
		if vmErr := b.vm.Close(ctx); err == nil {
			err = vmErr
		}
	}
	return err
}

func (b *Bridge) load(ctx context.Context, wasmBytes []byte, fallback FallbackFactory, imports engine.ImportTable) {
	defer close(b.done)
	start := time.Now()

	inst, vm, err := b.loadAccelerated(ctx, wasmBytes, imports)
	var module cryptoif.Module
	if err != nil {
		b.logger.Warnf("加速后端装载失败，启用软件回退: %v", err)
		module = fallback()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.module, b.vm = inst, vm
		b.kind.Store(uint32(types.BackendAccelerated))
		b.state.Store(int32(types.BackendReady))
		recordLoad(types.BackendAccelerated.String())
		b.logger.Infof("加速后端装载完成: hash=%s, 耗时=%s", inst.Hash(), time.Since(start))
	} else {
		b.loadErr = err
		b.module = module
		b.kind.Store(uint32(types.BackendFallback))
		b.state.Store(int32(types.BackendFallbackReady))
		recordLoad(types.BackendFallback.String())
	}

	if b.closed {
		b.logger.Infof("装载结束时执行桥已关闭，释放后端")
		if relErr := b.releaseLocked(context.Background()); relErr != nil {
			b.logger.Warnf("释放后端失败: %v", relErr)
		}
	}
}

func (b *Bridge) loadAccelerated(ctx context.Context, wasmBytes []byte, imports engine.ImportTable) (inst *engine.Instance, vm *engine.VM, err error) {
	if len(wasmBytes) == 0 {
		return nil, nil, ErrEmptyModule
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during load: %v", r)
		}
		if err != nil && vm != nil {
			_ = vm.Close(ctx)
			inst, vm = nil, nil
		}
	}()

	vm, err = engine.NewVM(ctx, &engine.EngineConfig{
		Name:                 "wasm-crypto",
		MaxLinearMemoryPages: b.options.MemoryLimitPages,
		CompileTimeout:       b.options.LoadTimeout,
		MaxModuleSize:        b.options.MaxModuleSize,
	})
	if err != nil {
		return nil, nil, err
	}

	if err = vm.RegisterImports(ctx, imports...); err != nil {
		return nil, vm, err
	}

	inst, err = vm.Load(ctx, wasmBytes)
	if err != nil {
		return nil, vm, err
	}

	if inst.Memory() == nil {
		return nil, vm, &MissingExportError{Export: cryptoif.ExportMemory}
	}
	for _, name := range []string{cryptoif.ExportMalloc, cryptoif.ExportFree} {
		if !inst.HasExport(name) {
			return nil, vm, &MissingExportError{Export: name}
		}
	}
	return inst, vm, nil
}

// ReadWasm 读取加速后端文件；path 为空时返回 nil（直接回退）
func ReadWasm(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wasm %s: %w", path, err)
	}
	return data, nil
}
