// Package config 定义配置提供者接口
package config

import (
	bridgeconfig "github.com/weisyn/wasmcrypto/internal/config/bridge"
	logconfig "github.com/weisyn/wasmcrypto/internal/config/log"
	badgerconfig "github.com/weisyn/wasmcrypto/internal/config/storage/badger"
)

// Provider 配置提供者接口
type Provider interface {
	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetBridge 获取密码学桥配置
	GetBridge() *bridgeconfig.BridgeOptions

	// GetBadger 获取键值存储配置
	GetBadger() *badgerconfig.BadgerOptions

	// GetAppName 获取应用名称
	GetAppName() string
}
