package app

import (
	"github.com/weisyn/wasmcrypto/pkg/interfaces/config"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项，实现 config.AppOptions 接口
type options struct {
	// 配置文件路径；为空时只读取环境变量
	configFilePath string

	// 直接提供的配置（优先级高于 configFilePath）
	appConfig *types.AppConfig

	// 是否启用存储模块
	enableStorage bool

	// 是否等待执行桥装载结束
	waitReady bool
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithAppConfig 直接使用给定配置，不再读取文件与环境变量
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// WithStorage 启用 BadgerDB 存储模块
func WithStorage() Option {
	return func(o *options) {
		o.enableStorage = true
	}
}

// WithWaitReady 启动后等待执行桥装载结束
func WithWaitReady() Option {
	return func(o *options) {
		o.waitReady = true
	}
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
