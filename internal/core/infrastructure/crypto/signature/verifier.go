// Package signature 实现多方案签名验证
//
// 验证流程：
//   - 签名长度必须为 64、65 或 66 字节
//   - 65/66 字节且首字节在 [0..2] 时视为多签编码，首字节选择方案
//   - 其余情况按 ed25519 → sr25519 → ecdsa → ethereum 顺序探测，首个匹配胜出
//
// 单个方案的输入不合法只会让该方案不匹配，不会中断探测。
package signature

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/address"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/primitives"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/log"
	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
	logInterface "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

const (
	// SelectorEd25519 多签前缀：ed25519
	SelectorEd25519 byte = 0
	// SelectorSr25519 多签前缀：sr25519
	SelectorSr25519 byte = 1
	// SelectorEcdsa 多签前缀：ecdsa（同时尝试 ethereum）
	SelectorEcdsa byte = 2
)

// selectorEntry 多签前缀对应的方案及候选验证器
type selectorEntry struct {
	scheme    types.Scheme
	verifiers []SchemeVerifier
}

// Verifier 签名验证分发器
type Verifier struct {
	logger  logInterface.Logger
	decoder *address.Decoder
	strict  bool

	// detect 无前缀时的探测顺序
	detect []SchemeVerifier
	// selectors 以前缀字节为下标
	selectors [SelectorEcdsa + 1]selectorEntry
}

var _ cryptoif.SignatureVerifier = (*Verifier)(nil)

// Option 验证器选项
type Option func(*Verifier)

// WithStrictSelector 65/66 字节签名首字节不在 [0..2] 时直接返回 UnknownCryptoType，
// 关闭时（默认）回退到方案探测
func WithStrictSelector(strict bool) Option {
	return func(v *Verifier) { v.strict = strict }
}

// WithLogger 设置日志记录器
func WithLogger(logger logInterface.Logger) Option {
	return func(v *Verifier) { v.logger = logger }
}

// WithAddressDecoder 设置地址解码器，例如 address.NewDecoderWithPrefix 限制 SS58 网络
func WithAddressDecoder(decoder *address.Decoder) Option {
	return func(v *Verifier) { v.decoder = decoder }
}

// New 创建签名验证器
//
// prims 可以尚未就绪：ed25519 与 ECDSA 在就绪前走纯 Go 路径，sr25519 需要后端就绪。
func New(prims *primitives.Primitives, opts ...Option) *Verifier {
	ed := &ed25519Verifier{prims: prims}
	sr := &sr25519Verifier{prims: prims}
	ecdsa := newEcdsaVerifier(types.SchemeEcdsa, prims)
	eth := newEcdsaVerifier(types.SchemeEthereum, prims)

	v := &Verifier{
		detect: []SchemeVerifier{ed, sr, ecdsa, eth},
	}
	v.selectors[SelectorEd25519] = selectorEntry{scheme: types.SchemeEd25519, verifiers: []SchemeVerifier{ed}}
	v.selectors[SelectorSr25519] = selectorEntry{scheme: types.SchemeSr25519, verifiers: []SchemeVerifier{sr}}
	v.selectors[SelectorEcdsa] = selectorEntry{scheme: types.SchemeEcdsa, verifiers: []SchemeVerifier{ecdsa, eth}}

	for _, opt := range opts {
		opt(v)
	}
	if v.decoder == nil {
		v.decoder = address.NewDecoder()
	}
	v.logger = log.OrNop(v.logger).With("module", "crypto.signature")
	return v
}

// Verify 验证签名，addressOrPublicKey 为原始公钥或地址字节
func (v *Verifier) Verify(message, signature, addressOrPublicKey []byte, isExpanded bool) (types.VerifyResult, error) {
	return v.VerifyContext(context.Background(), message, signature, addressOrPublicKey, isExpanded)
}

// VerifyContext 与 Verify 相同，但携带上下文；ctx 已取消时直接返回其错误
func (v *Verifier) VerifyContext(ctx context.Context, message, signature, addressOrPublicKey []byte, isExpanded bool) (types.VerifyResult, error) {
	if err := ctx.Err(); err != nil {
		return types.VerifyResult{}, err
	}
	if err := checkSignatureLength(signature); err != nil {
		return types.VerifyResult{}, err
	}
	publicKey, err := v.decoder.Decode(addressOrPublicKey)
	if err != nil {
		return types.VerifyResult{}, err
	}
	return v.route(ctx, message, signature, publicKey, isExpanded)
}

// SignatureVerify 接受字节或字符串输入，解码规则见 DecodeInputs
func (v *Verifier) SignatureVerify(message, signature, addressOrPublicKey interface{}, isExpanded bool) (types.VerifyResult, error) {
	msg, sig, publicKey, err := v.DecodeInputs(message, signature, addressOrPublicKey)
	if err != nil {
		return types.VerifyResult{}, err
	}
	return v.route(context.Background(), msg, sig, publicKey, isExpanded)
}

// DecodeInputs 把字节或字符串输入解码为验签所需的字节
//
//   - 字符串以 0x 开头且为合法十六进制时按十六进制解码
//   - 其他消息字符串按 UTF-8 字节处理
//   - 其他地址字符串按 SS58 解码（受解码器的网络前缀限制）
func (v *Verifier) DecodeInputs(message, signature, addressOrPublicKey interface{}) (msg, sig, publicKey []byte, err error) {
	msg, err = toBytes(message)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("message: %w", err)
	}
	sig, err = toBytes(signature)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("signature: %w", err)
	}
	if err := checkSignatureLength(sig); err != nil {
		return nil, nil, nil, err
	}

	switch a := addressOrPublicKey.(type) {
	case []byte:
		publicKey, err = v.decoder.Decode(a)
	case string:
		publicKey, err = v.decoder.DecodeString(a)
	default:
		err = fmt.Errorf("%w: %T", ErrUnsupportedInput, addressOrPublicKey)
	}
	if err != nil {
		return nil, nil, nil, err
	}
	return msg, sig, publicKey, nil
}

// VerifyMultisig 显式按多签编码验证：首字节必须为 [0..2]
func (v *Verifier) VerifyMultisig(ctx context.Context, message, signature, publicKey []byte, isExpanded bool) (types.VerifyResult, error) {
	if len(signature) == 0 {
		return types.VerifyResult{}, &InvalidSignatureLengthError{Got: 0}
	}
	if signature[0] > SelectorEcdsa {
		return types.VerifyResult{}, &UnknownCryptoTypeError{Selector: signature[0]}
	}
	return v.verifyMultisig(ctx, message, signature, publicKey, isExpanded), nil
}

func (v *Verifier) route(ctx context.Context, message, signature, publicKey []byte, isExpanded bool) (types.VerifyResult, error) {
	if len(signature) == 65 || len(signature) == 66 {
		if signature[0] <= SelectorEcdsa {
			result := v.verifyMultisig(ctx, message, signature, publicKey, isExpanded)
			recordVerify("multisig", result)
			return result, nil
		}
		if v.strict {
			return types.VerifyResult{}, &UnknownCryptoTypeError{Selector: signature[0]}
		}
	}
	result := v.verifyDetect(ctx, message, signature, publicKey, isExpanded)
	recordVerify("detect", result)
	return result, nil
}

// verifyDetect 按顺序探测，首个匹配的方案胜出
func (v *Verifier) verifyDetect(ctx context.Context, message, signature, publicKey []byte, isExpanded bool) types.VerifyResult {
	for _, sv := range v.detect {
		if sv.Verify(ctx, message, signature, publicKey, isExpanded) == Match {
			return types.VerifyResult{IsValid: true, Crypto: sv.Scheme()}
		}
	}
	return types.VerifyResult{Crypto: types.SchemeNone}
}

// verifyMultisig 结果方案始终为前缀对应的方案；ecdsa 前缀下 ethereum 匹配时改为 ethereum
func (v *Verifier) verifyMultisig(ctx context.Context, message, signature, publicKey []byte, isExpanded bool) types.VerifyResult {
	entry := v.selectors[signature[0]]
	result := types.VerifyResult{Crypto: entry.scheme}
	body := signature[1:]

	for _, sv := range entry.verifiers {
		switch sv.Verify(ctx, message, body, publicKey, isExpanded) {
		case Match:
			result.IsValid = true
			result.Crypto = sv.Scheme()
			return result
		case Malformed:
			v.logger.Debugf("多签验证输入不合法: scheme=%s, body=%d", sv.Scheme(), len(body))
		}
	}
	return result
}

func checkSignatureLength(signature []byte) error {
	switch len(signature) {
	case 64, 65, 66:
		return nil
	default:
		return &InvalidSignatureLengthError{Got: len(signature)}
	}
}

// toBytes 字节原样返回；0x 十六进制字符串解码；其余字符串取 UTF-8 字节
func toBytes(input interface{}) ([]byte, error) {
	switch in := input.(type) {
	case []byte:
		return in, nil
	case string:
		if strings.HasPrefix(in, "0x") {
			if raw, err := hexutil.Decode(in); err == nil {
				return raw, nil
			}
		}
		return []byte(in), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}
}
