// Package crypto 提供密码学执行桥、原语与验签服务的 fx 装配
package crypto

import (
	"context"

	"go.uber.org/fx"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/bridge"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/mnemonic"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/primitives"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/signature"
	config "github.com/weisyn/wasmcrypto/pkg/interfaces/config"
	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/log"
)

// CryptoParams 定义加密模块的依赖参数
type CryptoParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider // 配置提供者
	Logger    log.Logger      `optional:"true"` // 日志记录器
}

// CryptoOutput 定义加密模块的输出结构
type CryptoOutput struct {
	fx.Out

	Bridge     *bridge.Bridge
	BridgeIf   cryptoif.Bridge
	Primitives *primitives.Primitives
	Hash       *hash.HashService
	Decoder    *address.Decoder
	DecoderIf  cryptoif.AddressDecoder
	Verifier   *signature.Verifier
	VerifierIf cryptoif.SignatureVerifier
	Mnemonic   *mnemonic.Service
}

// Module 返回加密模块
func Module() fx.Option {
	return fx.Module("crypto",
		fx.Provide(ProvideCryptoServices),
	)
}

// ProvideCryptoServices 提供加密服务，并在应用启动时装载执行桥、停止时释放
func ProvideCryptoServices(params CryptoParams) (CryptoOutput, error) {
	out, err := CreateCryptoServices(ServiceInput{
		ConfigProvider: params.Provider,
		Logger:         params.Logger,
	})
	if err != nil {
		return CryptoOutput{}, err
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			Start(out.Bridge, params.Logger)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// 装载中的执行桥需要先结束装载才能释放
			out.Bridge.WaitReady(ctx)
			return out.Bridge.Close(ctx)
		},
	})

	return CryptoOutput{
		Bridge:     out.Bridge,
		BridgeIf:   out.Bridge,
		Primitives: out.Primitives,
		Hash:       out.Hash,
		Decoder:    out.Decoder,
		DecoderIf:  out.Decoder,
		Verifier:   out.Verifier,
		VerifierIf: out.Verifier,
		Mnemonic:   out.Mnemonic,
	}, nil
}
