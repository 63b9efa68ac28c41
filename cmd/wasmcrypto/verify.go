package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/weisyn/wasmcrypto/internal/app"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/signature"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

var (
	verifyMessage   string
	verifySignature string
	verifyAddress   string
	verifyExpanded  bool
	verifyCache     bool
)

// verifyCmd 验证签名
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "验证签名",
	Long: `验证消息签名，自动识别 ed25519 / sr25519 / ecdsa / ethereum。

message 与 signature 支持 0x 十六进制；message 的其他输入按 UTF-8 处理。
address 支持 0x 十六进制公钥/地址或 SS58 地址。

示例：
  wasmcrypto verify -m hello -s 0x... -a 5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY
  wasmcrypto verify -m 0x68656c6c6f -s 0x02... -a 0x... --expanded`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []app.Option
		if verifyCache {
			opts = append(opts, app.WithStorage())
		}
		return withApp(cmd, func(ctx context.Context, s app.Services) error {
			var (
				result types.VerifyResult
				err    error
			)
			if verifyCache && s.Store != nil {
				result, err = verifyCached(ctx, s)
			} else {
				result, err = s.Verifier.SignatureVerify(verifyMessage, verifySignature, verifyAddress, verifyExpanded)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		}, opts...)
	},
}

// verifyCached 与 SignatureVerify 使用相同的输入解码规则，再经缓存验证
func verifyCached(ctx context.Context, s app.Services) (types.VerifyResult, error) {
	result, hit, err := signature.NewCachedVerifier(s.Verifier, s.Store).
		SignatureVerify(ctx, verifyMessage, verifySignature, verifyAddress, verifyExpanded)
	if err != nil {
		return types.VerifyResult{}, err
	}
	s.Logger.Debugf("验签缓存: hit=%v", hit)
	return result, nil
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyMessage, "message", "m", "", "消息")
	verifyCmd.Flags().StringVarP(&verifySignature, "signature", "s", "", "签名 (0x 十六进制)")
	verifyCmd.Flags().StringVarP(&verifyAddress, "address", "a", "", "公钥或地址")
	verifyCmd.Flags().BoolVar(&verifyExpanded, "expanded", false, "ECDSA 公钥按 65 字节未压缩形式比较")
	verifyCmd.Flags().BoolVar(&verifyCache, "cache", false, "使用 BadgerDB 缓存验签结果")
	_ = verifyCmd.MarkFlagRequired("signature")
	_ = verifyCmd.MarkFlagRequired("address")
}
