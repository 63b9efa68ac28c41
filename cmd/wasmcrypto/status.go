package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/weisyn/wasmcrypto/internal/app"
	"github.com/weisyn/wasmcrypto/internal/app/version"
)

// statusInfo 执行桥状态
type statusInfo struct {
	State            string `json:"state"`
	Backend          string `json:"backend"`
	LoadError        string `json:"load_error,omitempty"`
	WasmPath         string `json:"wasm_path,omitempty"`
	MemoryLimitPages uint32 `json:"memory_limit_pages"`
	StrictSelector   bool   `json:"strict_selector"`
	Version          string `json:"version"`
}

// statusCmd 显示执行桥状态
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "装载执行桥并显示选中的后端",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, s app.Services) error {
			opts := s.Bridge.Options()
			info := statusInfo{
				State:            s.Bridge.State().String(),
				Backend:          s.Bridge.Kind().String(),
				WasmPath:         opts.WasmPath,
				MemoryLimitPages: opts.MemoryLimitPages,
				StrictSelector:   opts.StrictSelector,
				Version:          version.Version,
			}
			if err := s.Bridge.LoadError(); err != nil {
				info.LoadError = err.Error()
			}
			return printJSON(cmd.OutOrStdout(), info)
		})
	},
}
