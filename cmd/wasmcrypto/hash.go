package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/weisyn/wasmcrypto/internal/app"
)

var (
	hashSize   uint32
	hashRounds uint32
	hashKey    string
)

// hashCmd 计算哈希
var hashCmd = &cobra.Command{
	Use:       "hash <blake2b|keccak256|sha512|twox> <data>",
	Short:     "计算哈希",
	Long:      "使用执行桥计算哈希，data 支持 0x 十六进制或 UTF-8 文本。",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"blake2b", "keccak256", "sha512", "twox"},
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := decodeInput(args[1])
		if err != nil {
			return fmt.Errorf("data: %w", err)
		}
		key, err := decodeInput(hashKey)
		if err != nil {
			return fmt.Errorf("key: %w", err)
		}

		return withApp(cmd, func(ctx context.Context, s app.Services) error {
			var out []byte
			switch args[0] {
			case "blake2b":
				out, err = s.Primitives.Blake2b(ctx, data, key, hashSize)
			case "keccak256":
				out, err = s.Primitives.Keccak256(ctx, data)
			case "sha512":
				out, err = s.Primitives.Sha512(ctx, data)
			case "twox":
				out, err = s.Primitives.Twox(ctx, data, hashRounds)
			default:
				return fmt.Errorf("不支持的哈希算法: %s", args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"algorithm": args[0],
				"hash":      hexutil.Encode(out),
			})
		})
	},
}

func init() {
	hashCmd.Flags().Uint32Var(&hashSize, "size", 32, "blake2b 输出字节数 (1..64)")
	hashCmd.Flags().Uint32Var(&hashRounds, "rounds", 2, "twox 轮数 (每轮 8 字节)")
	hashCmd.Flags().StringVar(&hashKey, "key", "", "blake2b 密钥")
}
