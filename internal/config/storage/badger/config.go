// Package badger 提供键值存储（BadgerDB）配置
package badger

import (
	"path/filepath"

	configtypes "github.com/weisyn/wasmcrypto/pkg/types"
)

// BadgerOptions BadgerDB存储配置选项
type BadgerOptions struct {
	// Path 数据目录；InMemory 为 true 时忽略
	Path string `json:"path"`
	// InMemory 是否使用纯内存模式
	InMemory   bool `json:"in_memory"`
	SyncWrites bool `json:"sync_writes"`
	// MemTableSize 内存表大小
	MemTableSize int64 `json:"mem_table_size"`
}

// Config BadgerDB配置实现
type Config struct {
	options *BadgerOptions
}

// New 创建BadgerDB配置；未配置 data_root 时使用内存模式
func New(userConfig interface{}) *Config {
	options := createDefaultBadgerOptions()
	if storageConfig, ok := userConfig.(*configtypes.UserStorageConfig); ok && storageConfig != nil {
		if storageConfig.DataRoot != nil && *storageConfig.DataRoot != "" {
			// 统一目录结构：{data_root}/badger/
			options.Path = filepath.Join(*storageConfig.DataRoot, "badger")
			options.InMemory = false
		}
	}
	return &Config{options: options}
}

// NewFromOptions 从BadgerOptions创建配置实现
func NewFromOptions(options *BadgerOptions) *Config {
	if options == nil {
		options = createDefaultBadgerOptions()
	}
	return &Config{options: options}
}

func createDefaultBadgerOptions() *BadgerOptions {
	return &BadgerOptions{
		Path:         defaultPath,
		InMemory:     defaultInMemory,
		SyncWrites:   defaultSyncWrites,
		MemTableSize: defaultMemTableSize,
	}
}

// GetOptions 获取完整的BadgerDB配置选项
func (c *Config) GetOptions() *BadgerOptions {
	return c.options
}

// GetPath 获取数据库路径
func (c *Config) GetPath() string {
	return c.options.Path
}

// IsInMemory 是否内存模式
func (c *Config) IsInMemory() bool {
	return c.options.InMemory
}

// IsSyncWritesEnabled 是否启用同步写入
func (c *Config) IsSyncWritesEnabled() bool {
	return c.options.SyncWrites
}

// GetMemTableSize 获取内存表大小
func (c *Config) GetMemTableSize() int64 {
	return c.options.MemTableSize
}
