package engine

import (
	"fmt"
	"time"
)

// EngineConfig 引擎配置
// 控制 wazero 运行时的内存上限、模块大小与装载超时
type EngineConfig struct {
	// Name 引擎实例名称，用于日志
	Name string `json:"name" yaml:"name"`

	// ========== 内存配置 ==========

	// MaxLinearMemoryPages 最大线性内存页数（64KB/页）
	MaxLinearMemoryPages uint32 `json:"maxLinearMemoryPages" yaml:"maxLinearMemoryPages"`

	// ========== 编译配置 ==========

	// CompileTimeout 编译+实例化超时时间
	CompileTimeout time.Duration `json:"compileTimeout" yaml:"compileTimeout"`

	// MaxModuleSize 最大模块大小（字节）
	MaxModuleSize int64 `json:"maxModuleSize" yaml:"maxModuleSize"`

	// ========== 运行时配置 ==========

	// EnableWASI 是否注册 wasi_snapshot_preview1
	EnableWASI bool `json:"enableWASI" yaml:"enableWASI"`
}

// ConfigValidationResult 配置验证结果
type ConfigValidationResult struct {
	// 是否有效
	Valid bool `json:"valid"`

	// 错误列表
	Errors []string `json:"errors"`

	// 警告列表
	Warnings []string `json:"warnings"`
}

// DefaultEngineConfig 默认引擎配置
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Name: "wasm-crypto",

		MaxLinearMemoryPages: 256, // 16MB

		CompileTimeout: 10 * time.Second,
		MaxModuleSize:  8 * 1024 * 1024, // 8MB

		EnableWASI: false,
	}
}

// Validate 验证配置
func (c *EngineConfig) Validate() *ConfigValidationResult {
	result := &ConfigValidationResult{
		Valid:    true,
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}

	if c.MaxLinearMemoryPages == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "最大线性内存页数不能为0")
	}

	if c.MaxLinearMemoryPages > 65536 { // 4GB限制
		result.Valid = false
		result.Errors = append(result.Errors, "最大线性内存页数过大（超过4GB）")
	}

	if c.CompileTimeout <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "编译超时时间必须大于0")
	}

	if c.MaxModuleSize <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "最大模块大小必须大于0")
	}

	if c.MaxLinearMemoryPages < 17 {
		result.Warnings = append(result.Warnings, "线性内存低于1MB，scrypt 等原语可能失败")
	}

	return result
}

// Err 将验证结果转换为错误
func (r *ConfigValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("引擎配置验证失败: %v", r.Errors)
}
