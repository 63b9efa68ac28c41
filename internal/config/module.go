// Package config 提供应用配置管理功能
package config

import (
	bridgeconfig "github.com/weisyn/wasmcrypto/internal/config/bridge"
	badgerconfig "github.com/weisyn/wasmcrypto/internal/config/storage/badger"
	"github.com/weisyn/wasmcrypto/pkg/interfaces/config"
	"github.com/weisyn/wasmcrypto/pkg/types"
	"go.uber.org/fx"
)

// ConfigParams 配置模块依赖
type ConfigParams struct {
	fx.In

	AppOptions config.AppOptions `optional:"true"`
}

// ConfigOutput 配置模块输出
type ConfigOutput struct {
	fx.Out

	Provider config.Provider
}

// Module 返回配置模块
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			ProvideConfigServices,
			func(provider config.Provider) *bridgeconfig.BridgeOptions {
				return provider.GetBridge()
			},
			func(provider config.Provider) *badgerconfig.BadgerOptions {
				return provider.GetBadger()
			},
		),
	)
}

// ProvideConfigServices 提供配置服务
func ProvideConfigServices(params ConfigParams) (ConfigOutput, error) {
	var appConfig *types.AppConfig
	if params.AppOptions != nil {
		appConfig = params.AppOptions.GetAppConfig()
	}
	return ConfigOutput{Provider: NewProvider(appConfig)}, nil
}
