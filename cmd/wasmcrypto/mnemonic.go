package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/weisyn/wasmcrypto/internal/app"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/address"
)

var (
	mnemonicWords    int
	mnemonicPassword string
	mnemonicBytes    int
	mnemonicOnlyGo   bool
	mnemonicScheme   string
)

// mnemonicCmd 助记词相关命令
var mnemonicCmd = &cobra.Command{
	Use:   "mnemonic",
	Short: "BIP39 助记词",
}

var mnemonicGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "生成助记词",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, s app.Services) error {
			phrase, err := s.Mnemonic.Generate(ctx, mnemonicWords)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{"mnemonic": phrase})
		})
	},
}

var mnemonicValidateCmd = &cobra.Command{
	Use:   "validate <phrase>",
	Short: "校验助记词",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, s app.Services) error {
			return printJSON(cmd.OutOrStdout(), map[string]bool{"valid": s.Mnemonic.Validate(ctx, args[0])})
		})
	},
}

var mnemonicSeedCmd = &cobra.Command{
	Use:   "seed <phrase>",
	Short: "生成兼容以太坊/比特币的种子",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, s app.Services) error {
			seed, err := s.Mnemonic.ToLegacySeed(ctx, args[0], mnemonicPassword, mnemonicOnlyGo, mnemonicBytes)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{"seed": hexutil.Encode(seed)})
		})
	},
}

var mnemonicAddressCmd = &cobra.Command{
	Use:   "address <phrase>",
	Short: "由助记词生成公钥与 SS58 地址",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, s app.Services) error {
			mini, err := s.Mnemonic.ToMiniSecret(ctx, args[0], mnemonicPassword)
			if err != nil {
				return err
			}

			var pair []byte
			switch mnemonicScheme {
			case "sr25519":
				pair, err = s.Primitives.SrFromSeed(ctx, mini)
			case "ed25519":
				pair, err = s.Primitives.EdFromSeed(ctx, mini)
			default:
				return fmt.Errorf("不支持的方案: %s", mnemonicScheme)
			}
			if err != nil {
				return err
			}

			pub := pair[32:]
			ss58, err := address.Encode(pub, s.Provider.GetBridge().SS58Prefix)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"scheme":    mnemonicScheme,
				"publicKey": hexutil.Encode(pub),
				"address":   ss58,
			})
		})
	},
}

func init() {
	mnemonicGenerateCmd.Flags().IntVarP(&mnemonicWords, "words", "w", 12, "词数 (12/15/18/21/24)")
	mnemonicSeedCmd.Flags().IntVar(&mnemonicBytes, "bytes", 64, "种子长度 (32/64)")
	mnemonicSeedCmd.Flags().BoolVar(&mnemonicOnlyGo, "only-go", false, "不使用执行桥")
	mnemonicAddressCmd.Flags().StringVar(&mnemonicScheme, "scheme", "sr25519", "sr25519 或 ed25519")
	for _, c := range []*cobra.Command{mnemonicSeedCmd, mnemonicAddressCmd} {
		c.Flags().StringVarP(&mnemonicPassword, "password", "p", "", "BIP39 口令")
	}

	mnemonicCmd.AddCommand(mnemonicGenerateCmd, mnemonicValidateCmd, mnemonicSeedCmd, mnemonicAddressCmd)
}
