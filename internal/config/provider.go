package config

import (
	bridgeconfig "github.com/weisyn/wasmcrypto/internal/config/bridge"
	logconfig "github.com/weisyn/wasmcrypto/internal/config/log"
	badgerconfig "github.com/weisyn/wasmcrypto/internal/config/storage/badger"
	"github.com/weisyn/wasmcrypto/pkg/interfaces/config"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

const defaultAppName = "wasmcrypto"

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

var _ config.Provider = (*Provider)(nil)

// NewProvider 创建配置提供者，appConfig 可为 nil
func NewProvider(appConfig *types.AppConfig) config.Provider {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}
	return &Provider{appConfig: appConfig}
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *logconfig.LogOptions {
	return logconfig.New(p.appConfig.Log).GetOptions()
}

// GetBridge 获取密码学桥配置
func (p *Provider) GetBridge() *bridgeconfig.BridgeOptions {
	return bridgeconfig.New(p.appConfig.Bridge).GetOptions()
}

// GetBadger 获取键值存储配置
func (p *Provider) GetBadger() *badgerconfig.BadgerOptions {
	return badgerconfig.New(p.appConfig.Storage).GetOptions()
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}
