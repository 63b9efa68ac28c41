// Package secp256k1 提供 secp256k1 椭圆曲线封装
//
// 封装 btcd/btcec 与 decred secp256k1，供执行桥未就绪时的 ECDSA 验签路径使用；
// 签名格式统一为 r(32) ‖ s(32) ‖ recID(1)。
package secp256k1

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	dsecp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	// SignatureLength r ‖ s ‖ recID
	SignatureLength = 65
	// HashLength 消息摘要长度
	HashLength = 32
	// AddressLength 以太坊地址长度
	AddressLength = 20
)

// Curve 封装 secp256k1 椭圆曲线
type Curve struct{}

// NewCurve 创建新的 secp256k1 曲线实例
func NewCurve() *Curve {
	return &Curve{}
}

// RecoverPubkey 从签名恢复压缩公钥
//
// 参数：
//   - hash: 消息哈希（32字节）
//   - signature: 65字节签名（r+s+recoveryID）
//
// 返回：
//   - []byte: 压缩公钥（33字节）
//   - error: 恢复失败时的错误
func (c *Curve) RecoverPubkey(hash, signature []byte) ([]byte, error) {
	if len(signature) != SignatureLength {
		return nil, &ErrInvalidSignatureLength{Expected: SignatureLength, Got: len(signature)}
	}
	if len(hash) != HashLength {
		return nil, &ErrInvalidHashLength{Expected: HashLength, Got: len(hash)}
	}

	// btcec 的 RecoverCompact 期望 header(27 + recID + 4) ‖ r ‖ s
	recID := signature[64]
	if recID >= 4 {
		return nil, &ErrRecoverPubkeyFailed{Err: fmt.Errorf("invalid recovery id: %d", recID)}
	}
	compactSig := make([]byte, SignatureLength)
	compactSig[0] = 27 + recID + 4
	copy(compactSig[1:], signature[:64])

	pubKey, _, err := ecdsa.RecoverCompact(compactSig, hash)
	if err != nil {
		return nil, &ErrRecoverPubkeyFailed{Err: err}
	}
	return pubKey.SerializeCompressed(), nil
}

// ExpandPubkey 转换为 65 字节未压缩公钥
func (c *Curve) ExpandPubkey(pub []byte) ([]byte, error) {
	key, err := dsecp.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("解析公钥失败: %w", err)
	}
	return key.SerializeUncompressed(), nil
}

// CompressPubkey 转换为 33 字节压缩公钥
func (c *Curve) CompressPubkey(pub []byte) ([]byte, error) {
	key, err := dsecp.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("解析公钥失败: %w", err)
	}
	return key.SerializeCompressed(), nil
}

// EthereumAddress 公钥（压缩或未压缩）对应的 20 字节以太坊地址
func (c *Curve) EthereumAddress(pub []byte) ([]byte, error) {
	expanded, err := c.ExpandPubkey(pub)
	if err != nil {
		return nil, err
	}
	key, err := ethcrypto.UnmarshalPubkey(expanded)
	if err != nil {
		return nil, fmt.Errorf("解析公钥失败: %w", err)
	}
	return ethcrypto.PubkeyToAddress(*key).Bytes(), nil
}

// 错误类型定义

// ErrInvalidSignatureLength 签名长度无效
type ErrInvalidSignatureLength struct {
	Expected int
	Got      int
}

func (e *ErrInvalidSignatureLength) Error() string {
	return fmt.Sprintf("无效的签名长度: 期望 %d 字节，实际 %d 字节", e.Expected, e.Got)
}

// ErrInvalidHashLength 哈希长度无效
type ErrInvalidHashLength struct {
	Expected int
	Got      int
}

func (e *ErrInvalidHashLength) Error() string {
	return fmt.Sprintf("无效的哈希长度: 期望 %d 字节，实际 %d 字节", e.Expected, e.Got)
}

// ErrRecoverPubkeyFailed 公钥恢复失败
type ErrRecoverPubkeyFailed struct {
	Err error
}

func (e *ErrRecoverPubkeyFailed) Error() string {
	return fmt.Sprintf("公钥恢复失败: %v", e.Err)
}

func (e *ErrRecoverPubkeyFailed) Unwrap() error {
	return e.Err
}
