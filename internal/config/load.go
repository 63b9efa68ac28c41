package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/weisyn/wasmcrypto/pkg/types"
)

// EnvPrefix 环境变量前缀，如 WASMCRYPTO_BRIDGE_WASM_PATH
const EnvPrefix = "WASMCRYPTO"

// envKeys 允许通过环境变量覆盖的配置键
var envKeys = []string{
	"app_name",
	"log.level",
	"log.file_path",
	"bridge.wasm_path",
	"bridge.memory_limit_pages",
	"bridge.load_timeout",
	"bridge.strict_selector",
	"bridge.batch_workers",
	"bridge.ss58_prefix",
	"storage.data_root",
}

// AppOptionsImpl 从文件/环境变量加载得到的应用配置
type AppOptionsImpl struct {
	appConfig *types.AppConfig
}

// GetAppConfig 获取应用配置
func (o *AppOptionsImpl) GetAppConfig() *types.AppConfig {
	return o.appConfig
}

// NewAppOptions 包装已有的应用配置
func NewAppOptions(appConfig *types.AppConfig) *AppOptionsImpl {
	return &AppOptionsImpl{appConfig: appConfig}
}

// Load 加载配置文件（json/yaml/toml，由扩展名决定）并叠加环境变量
// path 为空时只读取环境变量
func Load(path string) (*types.AppConfig, error) {
	return loadWith(viper.New(), path)
}

func loadWith(v *viper.Viper, path string) (*types.AppConfig, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("绑定环境变量 %s 失败: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
		}
	}

	cfg := &types.AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}
