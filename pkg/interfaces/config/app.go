package config

import "github.com/weisyn/wasmcrypto/pkg/types"

// AppOptions 应用配置来源（文件、环境变量或测试中直接构造）
type AppOptions interface {
	// GetAppConfig 获取应用配置
	GetAppConfig() *types.AppConfig
}
