package bridge

import (
	"runtime"
	"time"
)

const (
	defaultWasmPath = ""

	// defaultMemoryLimitPages 256 页 = 16MiB，scrypt 之外的原语远用不到
	defaultMemoryLimitPages uint32 = 256
	maxMemoryLimitPages     uint32 = 65536

	defaultMaxModuleSize int64 = 8 * 1024 * 1024

	defaultLoadTimeout = 10 * time.Second

	// defaultResultPointer wasm-bindgen 约定的返回区偏移
	defaultResultPointer uint32 = 8

	defaultStrictSelector = false

	// defaultSS58Prefix 42 为通用 substrate 前缀
	defaultSS58Prefix uint16 = 42
)

var defaultBatchWorkers = runtime.NumCPU()
