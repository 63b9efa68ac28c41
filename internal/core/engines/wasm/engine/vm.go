// Package engine 封装 wazero 运行时，为密码学执行桥提供加速后端
package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
)

var wasmMagic = []byte{0x00, 0x61, 0x73, 0x6d}

var (
	ErrInvalidBytecode     = errors.New("invalid wasm bytecode")
	ErrModuleTooLarge      = errors.New("wasm module too large")
	ErrInstantiationFailed = errors.New("module instantiation failed")
	ErrFunctionNotFound    = errors.New("exported function not found")
	ErrRuntimeClosed       = errors.New("runtime not initialized")
)

// CompiledModule 表示编译后的WASM模块
type CompiledModule struct {
	module  wazero.CompiledModule
	hash    string
	created int64
}

// Hash 字节码 sha256（十六进制）
func (m *CompiledModule) Hash() string { return m.hash }

// ImportedModules 模块声明的导入模块名（去重）
func (m *CompiledModule) ImportedModules() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, def := range m.module.ImportedFunctions() {
		moduleName, _, _ := def.Import()
		if _, ok := seen[moduleName]; ok {
			continue
		}
		seen[moduleName] = struct{}{}
		names = append(names, moduleName)
	}
	return names
}

// VM 封装底层运行时生命周期与通用操作
// - 负责注册宿主导入、编译与实例化模块
// - 一个 VM 只承载一个执行桥实例
type VM struct {
	runtime wazero.Runtime
	config  *EngineConfig
}

// NewVM 创建 VM
func NewVM(ctx context.Context, config *EngineConfig) (*VM, error) {
	if config == nil {
		config = DefaultEngineConfig()
	}
	if err := config.Validate().Err(); err != nil {
		return nil, err
	}

	runtimeConfig := wazero.NewRuntimeConfig().
		WithMemoryLimitPages(config.MaxLinearMemoryPages)

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeConfig)

	if config.EnableWASI {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
			runtime.Close(ctx)
			return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
		}
	}

	return &VM{runtime: runtime, config: config}, nil
}

// RegisterImports 注册宿主导入模块；必须在 Instantiate 之前调用
func (v *VM) RegisterImports(ctx context.Context, modules ...HostModule) error {
	if v.runtime == nil {
		return ErrRuntimeClosed
	}
	for _, hm := range modules {
		builder := v.runtime.NewHostModuleBuilder(hm.Name)
		for _, fn := range hm.Functions {
			builder.NewFunctionBuilder().WithFunc(fn.Fn).Export(fn.Name)
		}
		if _, err := builder.Instantiate(ctx); err != nil {
			return fmt.Errorf("register host module %q: %w", hm.Name, err)
		}
	}
	return nil
}

// Compile 编译 WASM 字节码
func (v *VM) Compile(ctx context.Context, wasmBytes []byte) (*CompiledModule, error) {
	if v.runtime == nil {
		return nil, ErrRuntimeClosed
	}

	if len(wasmBytes) < 8 || !bytes.Equal(wasmBytes[:4], wasmMagic) {
		return nil, ErrInvalidBytecode
	}
	if int64(len(wasmBytes)) > v.config.MaxModuleSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrModuleTooLarge, len(wasmBytes), v.config.MaxModuleSize)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(wasmBytes))

	compiled, err := v.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("compile module failed: %w", err)
	}

	return &CompiledModule{
		module:  compiled,
		hash:    hash,
		created: time.Now().Unix(),
	}, nil
}

// Instantiate 实例化已编译模块
func (v *VM) Instantiate(ctx context.Context, mod *CompiledModule) (*Instance, error) {
	if v.runtime == nil {
		return nil, ErrRuntimeClosed
	}
	if mod == nil || mod.module == nil {
		return nil, errors.New("invalid compiled module")
	}

	// 不启动 _start，wasm-bindgen 产物没有该导出
	moduleConfig := wazero.NewModuleConfig().WithStartFunctions()

	instance, err := v.runtime.InstantiateModule(ctx, mod.module, moduleConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInstantiationFailed, err)
	}

	return &Instance{module: instance, hash: mod.hash}, nil
}

// Load 编译并实例化，受 CompileTimeout 约束
func (v *VM) Load(ctx context.Context, wasmBytes []byte) (*Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, v.config.CompileTimeout)
	defer cancel()

	compiled, err := v.Compile(ctx, wasmBytes)
	if err != nil {
		return nil, err
	}
	return v.Instantiate(ctx, compiled)
}

// Close 关闭 VM 并释放运行时资源
func (v *VM) Close(ctx context.Context) error {
	if v.runtime == nil {
		return nil
	}
	err := v.runtime.Close(ctx)
	v.runtime = nil
	return err
}

// Instance 已实例化的模块，实现 crypto.Module
type Instance struct {
	module api.Module
	hash   string
}

var _ cryptoif.Module = (*Instance)(nil)

// Hash 模块字节码哈希
func (inst *Instance) Hash() string { return inst.hash }

// Memory 返回实例的线性内存
func (inst *Instance) Memory() cryptoif.Memory {
	if inst.module == nil {
		return nil
	}
	mem := inst.module.Memory()
	if mem == nil {
		return nil
	}
	return mem
}

// HasExport 判断导出函数是否存在
func (inst *Instance) HasExport(name string) bool {
	if inst.module == nil {
		return false
	}
	return inst.module.ExportedFunction(name) != nil
}

// Call 调用模块实例的导出函数
func (inst *Instance) Call(ctx context.Context, function string, params ...uint64) ([]uint64, error) {
	if inst.module == nil {
		return nil, errors.New("module instance not initialized")
	}

	fn := inst.module.ExportedFunction(function)
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, function)
	}

	// 调用一旦开始就不可取消，否则运行时会关闭整个实例
	results, err := fn.Call(context.WithoutCancel(ctx), params...)
	if err != nil {
		return nil, fmt.Errorf("function %s call failed: %w", function, err)
	}
	return results, nil
}

// Close 关闭模块实例
func (inst *Instance) Close(ctx context.Context) error {
	if inst.module == nil {
		return nil
	}
	return inst.module.Close(ctx)
}
