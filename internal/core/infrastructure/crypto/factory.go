package crypto

import (
	"context"

	bridgeconfig "github.com/weisyn/wasmcrypto/internal/config/bridge"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/bridge"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/mnemonic"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/primitives"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/signature"
	logimpl "github.com/weisyn/wasmcrypto/internal/core/infrastructure/log"
	"github.com/weisyn/wasmcrypto/pkg/interfaces/config"
	log "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/log"
)

// ServiceInput 定义加密服务工厂的输入参数
type ServiceInput struct {
	ConfigProvider config.Provider `optional:"false"`
	Logger         log.Logger      `optional:"true"`
}

// ServiceOutput 定义加密服务工厂的输出结果
type ServiceOutput struct {
	Bridge     *bridge.Bridge
	Primitives *primitives.Primitives
	Hash       *hash.HashService
	Decoder    *address.Decoder
	Verifier   *signature.Verifier
	Mnemonic   *mnemonic.Service
}

// CreateCryptoServices 创建加密服务
//
// 执行桥此时尚未装载，调用 Start 后开始异步装载；ed25519 与 ECDSA 验签在装载完成前即可使用。
func CreateCryptoServices(input ServiceInput) (ServiceOutput, error) {
	logger := logimpl.OrNop(input.Logger).With("module", "crypto")

	var options *bridgeconfig.BridgeOptions
	if input.ConfigProvider != nil {
		options = input.ConfigProvider.GetBridge()
	}

	b := bridge.New(bridge.WithOptions(options), bridge.WithLogger(input.Logger))
	prims := primitives.New(b)
	decoder := newDecoder(b.Options())

	verifier := signature.New(prims,
		signature.WithStrictSelector(b.Options().StrictSelector),
		signature.WithAddressDecoder(decoder),
		signature.WithLogger(input.Logger),
	)

	logger.Debugf("加密服务已创建: wasm=%q, strict_selector=%v", b.Options().WasmPath, b.Options().StrictSelector)

	return ServiceOutput{
		Bridge:     b,
		Primitives: prims,
		Hash:       hash.NewHashService(prims),
		Decoder:    decoder,
		Verifier:   verifier,
		Mnemonic:   mnemonic.NewService(prims),
	}, nil
}

func newDecoder(options *bridgeconfig.BridgeOptions) *address.Decoder {
	if options.RestrictSS58Prefix {
		return address.NewDecoderWithPrefix(options.SS58Prefix)
	}
	return address.NewDecoder()
}

// Start 读取加速后端并启动异步装载
//
// 读取失败时以空字节码装载，执行桥记录告警后启用软件回退。
func Start(b *bridge.Bridge, logger log.Logger) {
	logger = logimpl.OrNop(logger).With("module", "crypto")
	wasmBytes, err := bridge.ReadWasm(b.Options().WasmPath)
	if err != nil {
		logger.Warnf("读取加速后端失败: %v", err)
		wasmBytes = nil
	}
	// 装载独立于启动钩子的上下文，避免钩子返回后中断装载
	b.Init(context.Background(), wasmBytes, nil, nil)
}
