// Package bridge 提供密码学执行桥的配置选项
package bridge

import (
	"time"

	configtypes "github.com/weisyn/wasmcrypto/pkg/types"
)

// BridgeOptions 密码学桥配置选项
type BridgeOptions struct {
	// WasmPath 加速后端 WASM 文件路径；为空时直接启用软件回退
	WasmPath string `json:"wasm_path"`

	// MemoryLimitPages 线性内存上限（64KiB/页）
	MemoryLimitPages uint32 `json:"memory_limit_pages"`

	// MaxModuleSize 允许装载的最大模块字节数
	MaxModuleSize int64 `json:"max_module_size"`

	// LoadTimeout 加速后端编译+实例化超时，超时后按装载失败处理并启用回退
	LoadTimeout time.Duration `json:"load_timeout"`

	// ResultPointer 后端写回 (ptr,len) 结果对的固定偏移
	ResultPointer uint32 `json:"result_pointer"`

	// StrictSelector 见 DESIGN.md 的开放问题记录
	StrictSelector bool `json:"strict_selector"`

	// BatchWorkers 批量验签 worker 数
	BatchWorkers int `json:"batch_workers"`

	// SS58Prefix CLI 输出地址时使用的网络前缀
	SS58Prefix uint16 `json:"ss58_prefix"`

	// RestrictSS58Prefix 为 true 时地址解码只接受 SS58Prefix 网络
	RestrictSS58Prefix bool `json:"restrict_ss58_prefix"`
}

// Config 密码学桥配置实现
type Config struct {
	options *BridgeOptions
}

// New 创建配置；userConfig 为 *types.UserBridgeConfig，nil 时使用默认值
func New(userConfig interface{}) *Config {
	options := createDefaultBridgeOptions()
	if uc, ok := userConfig.(*configtypes.UserBridgeConfig); ok && uc != nil {
		applyUserBridgeConfig(options, uc)
	}
	return &Config{options: options}
}

// NewFromOptions 直接使用给定选项
func NewFromOptions(options *BridgeOptions) *Config {
	if options == nil {
		options = createDefaultBridgeOptions()
	}
	return &Config{options: options}
}

func createDefaultBridgeOptions() *BridgeOptions {
	return &BridgeOptions{
		WasmPath:         defaultWasmPath,
		MemoryLimitPages: defaultMemoryLimitPages,
		MaxModuleSize:    defaultMaxModuleSize,
		LoadTimeout:      defaultLoadTimeout,
		ResultPointer:    defaultResultPointer,
		StrictSelector:   defaultStrictSelector,
		BatchWorkers:     defaultBatchWorkers,
		SS58Prefix:       defaultSS58Prefix,
	}
}

func applyUserBridgeConfig(options *BridgeOptions, uc *configtypes.UserBridgeConfig) {
	if uc.WasmPath != nil {
		options.WasmPath = *uc.WasmPath
	}
	if uc.MemoryLimitPages != nil && *uc.MemoryLimitPages > 0 && *uc.MemoryLimitPages <= maxMemoryLimitPages {
		options.MemoryLimitPages = *uc.MemoryLimitPages
	}
	if uc.LoadTimeout != nil {
		if d, err := time.ParseDuration(*uc.LoadTimeout); err == nil && d > 0 {
			options.LoadTimeout = d
		}
	}
	if uc.StrictSelector != nil {
		options.StrictSelector = *uc.StrictSelector
	}
	if uc.BatchWorkers != nil && *uc.BatchWorkers > 0 {
		options.BatchWorkers = *uc.BatchWorkers
	}
	if uc.SS58Prefix != nil {
		options.SS58Prefix = *uc.SS58Prefix
	}
	if uc.RestrictSS58Prefix != nil {
		options.RestrictSS58Prefix = *uc.RestrictSS58Prefix
	}
}

// GetOptions 获取完整配置
func (c *Config) GetOptions() *BridgeOptions {
	return c.options
}
