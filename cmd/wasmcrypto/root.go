package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/weisyn/wasmcrypto/internal/app"
	"github.com/weisyn/wasmcrypto/internal/app/version"
	appconfig "github.com/weisyn/wasmcrypto/internal/config"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigFile string        // 配置文件
	WasmPath   string        // 覆盖 bridge.wasm_path
	Strict     bool          // 覆盖 bridge.strict_selector
	Timeout    time.Duration // 整体超时
}

var globalFlags GlobalFlags

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "wasmcrypto",
	Short: "WASM 加速的密码学工具",
	Long: `wasmcrypto - 密码学执行桥命令行

启动时装载 WASM 加速后端，装载失败时自动使用纯 Go 软件后端。
支持 ed25519 / sr25519 / ecdsa / ethereum 签名验证与多签前缀格式。

配置来源（优先级从高到低）：
  命令行标志 > WASMCRYPTO_* 环境变量 > --config 配置文件 > 默认值`,
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", "", "配置文件路径 (json/yaml/toml)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.WasmPath, "wasm", "", "加速后端 WASM 文件路径")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Strict, "strict-selector", false, "65/66 字节签名前缀超出 [0..2] 时报错")
	rootCmd.PersistentFlags().DurationVar(&globalFlags.Timeout, "timeout", 30*time.Second, "整体超时")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(mnemonicCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig 读取配置文件与环境变量，再叠加命令行标志
func loadConfig(cmd *cobra.Command) (*types.AppConfig, error) {
	cfg, err := appconfig.Load(globalFlags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if cfg.Bridge == nil {
		cfg.Bridge = &types.UserBridgeConfig{}
	}
	if globalFlags.WasmPath != "" {
		cfg.Bridge.WasmPath = types.StringPtr(globalFlags.WasmPath)
	}
	if cmd.Flags().Changed("strict-selector") {
		cfg.Bridge.StrictSelector = types.BoolPtr(globalFlags.Strict)
	}
	return cfg, nil
}

// withApp 启动应用、等待执行桥装载结束后执行 fn
func withApp(cmd *cobra.Command, fn func(ctx context.Context, s app.Services) error, opts ...app.Option) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), globalFlags.Timeout)
	defer cancel()

	a, err := app.New(ctx, append([]app.Option{app.WithAppConfig(cfg), app.WithWaitReady()}, opts...)...)
	if err != nil {
		return err
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		_ = a.Stop(stopCtx)
	}()

	return fn(ctx, a.Services())
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), version.GetBuildInfo())
	},
}
