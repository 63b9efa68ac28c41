// Package app 组装配置、日志、密码学与存储模块
package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	appconfig "github.com/weisyn/wasmcrypto/internal/config"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/bridge"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/mnemonic"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/primitives"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/signature"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/log"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/storage"
	"github.com/weisyn/wasmcrypto/pkg/interfaces/config"
	logInterface "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/storage"
)

// Services 启动后可用的服务集合
type Services struct {
	fx.In

	Provider   config.Provider
	Logger     logInterface.Logger
	Bridge     *bridge.Bridge
	Primitives *primitives.Primitives
	Hash       *hash.HashService
	Verifier   *signature.Verifier
	Mnemonic   *mnemonic.Service
	Store      storageInterface.Store `optional:"true"`
}

// App 已启动的应用
type App struct {
	fxApp    *fx.App
	services Services
}

// New 加载配置并启动各模块
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := newOptions(opts...)
	if o.appConfig == nil {
		cfg, err := appconfig.Load(o.configFilePath)
		if err != nil {
			return nil, err
		}
		o.appConfig = cfg
	}

	modules := []fx.Option{
		fx.NopLogger,
		fx.Provide(func() config.AppOptions { return o }),
		appconfig.Module(),
		log.Module(),
		crypto.Module(),
	}
	if o.enableStorage {
		modules = append(modules, storage.Module())
	}

	a := &App{}
	modules = append(modules, fx.Invoke(func(s Services) { a.services = s }))
	a.fxApp = fx.New(modules...)
	if err := a.fxApp.Err(); err != nil {
		return nil, fmt.Errorf("组装模块失败: %w", err)
	}
	if err := a.fxApp.Start(ctx); err != nil {
		return nil, fmt.Errorf("启动模块失败: %w", err)
	}

	if o.waitReady && !a.services.Bridge.WaitReady(ctx) {
		_ = a.fxApp.Stop(context.Background())
		return nil, fmt.Errorf("等待执行桥就绪失败: %w", ctx.Err())
	}
	return a, nil
}

// Services 返回服务集合
func (a *App) Services() Services {
	return a.services
}

// Stop 按逆序停止各模块
func (a *App) Stop(ctx context.Context) error {
	return a.fxApp.Stop(ctx)
}
