// Package storage 提供键值存储的 fx 装配
package storage

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	badgerconfig "github.com/weisyn/wasmcrypto/internal/config/storage/badger"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/wasmcrypto/pkg/interfaces/config"
	"github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/storage"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Provider  config.Provider // 配置提供者
	Logger    log.Logger      `optional:"true"` // 日志记录器
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	Store storageInterface.Store
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 打开 BadgerDB 并在应用停止时关闭
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	store, err := badger.New(badgerconfig.NewFromOptions(params.Provider.GetBadger()), params.Logger)
	if err != nil {
		return ModuleOutput{}, fmt.Errorf("存储初始化失败: %w", err)
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})

	return ModuleOutput{Store: store}, nil
}
