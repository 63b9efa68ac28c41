package signature

import (
	"bytes"
	"context"

	"github.com/cloudflare/circl/sign/ed25519"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/hash"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/primitives"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/secp256k1"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

// Outcome 单个方案的验证结果
type Outcome uint8

const (
	// NoMatch 输入形状合法但签名不成立
	NoMatch Outcome = iota
	// Match 签名成立
	Match
	// Malformed 输入对该方案不合法（长度、编码、恢复失败或后端不可用）
	Malformed
)

// String 返回结果名称
func (o Outcome) String() string {
	switch o {
	case Match:
		return "match"
	case Malformed:
		return "malformed"
	default:
		return "no_match"
	}
}

func outcomeOf(ok bool, err error) Outcome {
	if err != nil {
		return Malformed
	}
	if ok {
		return Match
	}
	return NoMatch
}

// SchemeVerifier 单一签名方案的验证器
type SchemeVerifier interface {
	// Scheme 方案标签
	Scheme() types.Scheme

	// Verify 验证签名；isExpanded 只对 ECDSA 系列有意义
	Verify(ctx context.Context, message, signature, publicKey []byte, isExpanded bool) Outcome
}

// ========== ed25519 ==========

type ed25519Verifier struct {
	prims *primitives.Primitives
}

func (v *ed25519Verifier) Scheme() types.Scheme { return types.SchemeEd25519 }

// Verify 后端就绪前使用纯 Go 实现，可在装载完成前做同步校验
func (v *ed25519Verifier) Verify(ctx context.Context, message, signature, publicKey []byte, _ bool) Outcome {
	if len(signature) != ed25519.SignatureSize || len(publicKey) != ed25519.PublicKeySize {
		return Malformed
	}
	if v.prims != nil && v.prims.IsReady() {
		return outcomeOf(v.prims.EdVerify(ctx, signature, message, publicKey))
	}
	return outcomeOf(ed25519.Verify(publicKey, message, signature), nil)
}

// ========== sr25519 ==========

const (
	srSignatureLen = 64
	srPublicKeyLen = 32
)

type sr25519Verifier struct {
	prims *primitives.Primitives
}

func (v *sr25519Verifier) Scheme() types.Scheme { return types.SchemeSr25519 }

func (v *sr25519Verifier) Verify(ctx context.Context, message, signature, publicKey []byte, _ bool) Outcome {
	if len(signature) != srSignatureLen || len(publicKey) != srPublicKeyLen {
		return Malformed
	}
	if v.prims == nil {
		return Malformed
	}
	return outcomeOf(v.prims.SrVerify(ctx, signature, message, publicKey))
}

// ========== secp256k1（ecdsa / ethereum） ==========

// ecdsaVerifier 恢复签名者公钥后与输入比较
//
//   - ecdsa：摘要为 blake2b-256；输入可为公钥本身或 blake2b-256(公钥)
//   - ethereum：摘要为 keccak256；输入可为公钥本身或以太坊地址（比较末 20 字节）
//
// isExpanded 为 true 时公钥按 65 字节未压缩形式参与比较。
type ecdsaVerifier struct {
	scheme types.Scheme
	prims  *primitives.Primitives
	hashes *hash.HashService
	curve  *secp256k1.Curve
}

func newEcdsaVerifier(scheme types.Scheme, prims *primitives.Primitives) *ecdsaVerifier {
	return &ecdsaVerifier{
		scheme: scheme,
		prims:  prims,
		hashes: hash.NewHashService(prims),
		curve:  secp256k1.NewCurve(),
	}
}

func (v *ecdsaVerifier) Scheme() types.Scheme { return v.scheme }

func (v *ecdsaVerifier) digest(ctx context.Context, data []byte) ([]byte, error) {
	if v.scheme == types.SchemeEthereum {
		return v.hashes.Keccak256(ctx, data)
	}
	return v.hashes.Blake2b256(ctx, data)
}

func (v *ecdsaVerifier) accelerated() bool {
	return v.prims != nil && v.prims.IsReady()
}

func (v *ecdsaVerifier) recover(ctx context.Context, msgHash, signature []byte) ([]byte, error) {
	if v.accelerated() {
		return v.prims.SecpRecover(ctx, msgHash, signature[:64], uint32(signature[64]))
	}
	return v.curve.RecoverPubkey(msgHash, signature)
}

func (v *ecdsaVerifier) expand(ctx context.Context, pub []byte) ([]byte, error) {
	if v.accelerated() {
		return v.prims.SecpExpand(ctx, pub)
	}
	return v.curve.ExpandPubkey(pub)
}

func (v *ecdsaVerifier) Verify(ctx context.Context, message, signature, publicKey []byte, isExpanded bool) Outcome {
	if len(signature) != secp256k1.SignatureLength || signature[64] > 3 {
		return Malformed
	}

	msgHash, err := v.digest(ctx, message)
	if err != nil {
		return Malformed
	}
	compressed, err := v.recover(ctx, msgHash, signature)
	if err != nil {
		return Malformed
	}

	key := compressed
	var expanded []byte
	if isExpanded || v.scheme == types.SchemeEthereum {
		if expanded, err = v.expand(ctx, compressed); err != nil {
			return Malformed
		}
	}
	if isExpanded {
		key = expanded
	}
	if bytes.Equal(key, publicKey) {
		return Match
	}

	if v.scheme == types.SchemeEthereum {
		// 以太坊地址 = keccak256(X ‖ Y) 的末 20 字节
		signer, err := v.digest(ctx, expanded[1:])
		if err != nil {
			return Malformed
		}
		if len(publicKey) >= secp256k1.AddressLength &&
			bytes.Equal(signer[len(signer)-secp256k1.AddressLength:], publicKey[len(publicKey)-secp256k1.AddressLength:]) {
			return Match
		}
		return NoMatch
	}

	signer, err := v.digest(ctx, key)
	if err != nil {
		return Malformed
	}
	return outcomeOf(bytes.Equal(signer, publicKey), nil)
}
