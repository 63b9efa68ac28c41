package types

// AppConfig 用户配置根结构
// 只包含配置文件中实际出现的字段，缺省值由各 internal/config 子包补齐
type AppConfig struct {
	AppName *string `json:"app_name,omitempty" mapstructure:"app_name"` // 应用名称

	Log     *UserLogConfig     `json:"log,omitempty" mapstructure:"log"`
	Bridge  *UserBridgeConfig  `json:"bridge,omitempty" mapstructure:"bridge"`
	Storage *UserStorageConfig `json:"storage,omitempty" mapstructure:"storage"`
}

// UserLogConfig 用户日志配置
type UserLogConfig struct {
	Level    *string `json:"level,omitempty" mapstructure:"level"`         // 日志级别：debug, info, warn, error, fatal
	FilePath *string `json:"file_path,omitempty" mapstructure:"file_path"` // 日志文件路径
}

// UserBridgeConfig 用户密码学桥配置
type UserBridgeConfig struct {
	// WasmPath 加速后端 WASM 文件路径；为空时直接启用软件回退
	WasmPath *string `json:"wasm_path,omitempty" mapstructure:"wasm_path"`
	// MemoryLimitPages 线性内存上限（64KiB/页）
	MemoryLimitPages *uint32 `json:"memory_limit_pages,omitempty" mapstructure:"memory_limit_pages"`
	// LoadTimeout 装载超时，如 "10s"
	LoadTimeout *string `json:"load_timeout,omitempty" mapstructure:"load_timeout"`
	// StrictSelector 65/66 字节签名的前缀字节超出 [0..2] 时直接报 UnknownCryptoType
	StrictSelector *bool `json:"strict_selector,omitempty" mapstructure:"strict_selector"`
	// BatchWorkers 批量验签的并发 worker 数
	BatchWorkers *int `json:"batch_workers,omitempty" mapstructure:"batch_workers"`
	// SS58Prefix 地址编码网络前缀
	SS58Prefix *uint16 `json:"ss58_prefix,omitempty" mapstructure:"ss58_prefix"`
	// RestrictSS58Prefix 验签时只接受 SS58Prefix 网络的地址
	RestrictSS58Prefix *bool `json:"restrict_ss58_prefix,omitempty" mapstructure:"restrict_ss58_prefix"`
}

// UserStorageConfig 用户存储配置
type UserStorageConfig struct {
	// DataRoot 数据根目录；为空时使用内存存储
	DataRoot *string `json:"data_root,omitempty" mapstructure:"data_root"`
}
