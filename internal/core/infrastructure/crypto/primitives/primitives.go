// Package primitives 在执行桥之上提供密码学原语
//
// 每个原语对应一次串行化调用：写入参数 → 调用一个导出 → 读取一个结果。
// 执行桥未就绪时返回 bridge.ErrNotReady。
package primitives

import (
	"context"
	"fmt"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/bridge"
	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
)

// Primitives 原语集合
type Primitives struct {
	bridge *bridge.Bridge
}

// New 创建原语集合
func New(b *bridge.Bridge) *Primitives {
	return &Primitives{bridge: b}
}

// Bridge 底层执行桥
func (p *Primitives) Bridge() *bridge.Bridge { return p.bridge }

// IsReady 执行桥是否就绪
func (p *Primitives) IsReady() bool { return p.bridge.IsReady() }

// marshal 依次写入参数：[]byte/string 展开为 (ptr, len)，uint32 原样传递
func marshal(s *bridge.Session, args []interface{}) ([]uint64, error) {
	params := make([]uint64, 0, 2*len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case []byte:
			ptr, n, err := s.AllocBytes(v)
			if err != nil {
				return nil, err
			}
			params = append(params, uint64(ptr), uint64(n))
		case string:
			ptr, n, err := s.AllocString(v)
			if err != nil {
				return nil, err
			}
			params = append(params, uint64(ptr), uint64(n))
		case uint32:
			params = append(params, uint64(v))
		default:
			return nil, fmt.Errorf("unsupported argument %d type %T", i, arg)
		}
	}
	return params, nil
}

func (p *Primitives) callBytes(ctx context.Context, export string, args ...interface{}) ([]byte, error) {
	return bridge.With(ctx, p.bridge, func(s *bridge.Session) ([]byte, error) {
		params, err := marshal(s, args)
		if err != nil {
			return nil, err
		}
		params = append([]uint64{uint64(s.ResultPointer())}, params...)
		if _, err := s.Call(export, params...); err != nil {
			return nil, err
		}
		return s.ReadResultBytes()
	})
}

func (p *Primitives) callString(ctx context.Context, export string, args ...interface{}) (string, error) {
	b, err := p.callBytes(ctx, export, args...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *Primitives) callBool(ctx context.Context, export string, args ...interface{}) (bool, error) {
	return bridge.With(ctx, p.bridge, func(s *bridge.Session) (bool, error) {
		params, err := marshal(s, args)
		if err != nil {
			return false, err
		}
		res, err := s.Call(export, params...)
		if err != nil {
			return false, err
		}
		if len(res) != 1 {
			return false, fmt.Errorf("%s returned %d values", export, len(res))
		}
		return uint32(res[0]) != 0, nil
	})
}

// ========== 哈希 ==========

// Blake2b 带可选密钥的 blake2b，size 为输出字节数（1..64）
func (p *Primitives) Blake2b(ctx context.Context, data, key []byte, size uint32) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportBlake2b, data, key, size)
}

// Keccak256 keccak-256
func (p *Primitives) Keccak256(ctx context.Context, data []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportKeccak256, data)
}

// Sha512 sha-512
func (p *Primitives) Sha512(ctx context.Context, data []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportSha512, data)
}

// Twox xxhash64 多轮拼接，rounds 轮输出 8*rounds 字节
func (p *Primitives) Twox(ctx context.Context, data []byte, rounds uint32) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportTwox, data, rounds)
}

// ========== 密钥派生 ==========

// Pbkdf2 PBKDF2-HMAC-SHA512，输出 64 字节
func (p *Primitives) Pbkdf2(ctx context.Context, data, salt []byte, rounds uint32) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportPbkdf2, data, salt, rounds)
}

// Scrypt N=2^log2n，输出 64 字节
func (p *Primitives) Scrypt(ctx context.Context, password, salt []byte, log2n, r, pp uint32) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportScrypt, password, salt, log2n, r, pp)
}

// ========== ed25519 ==========

// EdFromSeed 返回 secret(32) ‖ public(32)
func (p *Primitives) EdFromSeed(ctx context.Context, seed []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportEdFromSeed, seed)
}

// EdSign 返回 64 字节签名
func (p *Primitives) EdSign(ctx context.Context, pub, sec, msg []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportEdSign, pub, sec, msg)
}

// EdVerify 验证 ed25519 签名
func (p *Primitives) EdVerify(ctx context.Context, sig, msg, pub []byte) (bool, error) {
	return p.callBool(ctx, cryptoif.ExportEdVerify, sig, msg, pub)
}

// ========== sr25519 ==========

// SrFromSeed 返回 secret(32) ‖ public(32)
func (p *Primitives) SrFromSeed(ctx context.Context, seed []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportSrFromSeed, seed)
}

// SrSign 使用 "substrate" 签名上下文
func (p *Primitives) SrSign(ctx context.Context, pub, sec, msg []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportSrSign, pub, sec, msg)
}

// SrVerify 验证 sr25519 签名
func (p *Primitives) SrVerify(ctx context.Context, sig, msg, pub []byte) (bool, error) {
	return p.callBool(ctx, cryptoif.ExportSrVerify, sig, msg, pub)
}

// ========== secp256k1 ==========

// SecpFromSeed 返回 secret(32) ‖ compressed public(33)
func (p *Primitives) SecpFromSeed(ctx context.Context, seed []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportSecpFromSeed, seed)
}

// SecpSign 对 32 字节摘要签名，返回 r ‖ s ‖ recid
func (p *Primitives) SecpSign(ctx context.Context, hash, sec []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportSecpSign, hash, sec)
}

// SecpRecover 从 64 字节 r ‖ s 与 recid 恢复压缩公钥
func (p *Primitives) SecpRecover(ctx context.Context, hash, sig []byte, recid uint32) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportSecpRecover, hash, sig, recid)
}

// SecpExpand 转换为 65 字节未压缩公钥
func (p *Primitives) SecpExpand(ctx context.Context, pub []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportSecpExpand, pub)
}

// SecpCompress 转换为 33 字节压缩公钥
func (p *Primitives) SecpCompress(ctx context.Context, pub []byte) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportSecpCompress, pub)
}

// ========== BIP39 ==========

// Bip39Generate 生成 words 个单词的助记词
func (p *Primitives) Bip39Generate(ctx context.Context, words uint32) (string, error) {
	return p.callString(ctx, cryptoif.ExportBip39Generate, words)
}

// Bip39ToEntropy 助记词转熵
func (p *Primitives) Bip39ToEntropy(ctx context.Context, phrase string) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportBip39ToEntropy, phrase)
}

// Bip39ToMiniSecret substrate 风格 mini secret（32 字节）
func (p *Primitives) Bip39ToMiniSecret(ctx context.Context, phrase, password string) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportBip39ToMiniSecret, phrase, password)
}

// Bip39ToSeed 标准 BIP39 种子的前 32 字节
func (p *Primitives) Bip39ToSeed(ctx context.Context, phrase, password string) ([]byte, error) {
	return p.callBytes(ctx, cryptoif.ExportBip39ToSeed, phrase, password)
}

// Bip39Validate 校验助记词
func (p *Primitives) Bip39Validate(ctx context.Context, phrase string) (bool, error) {
	return p.callBool(ctx, cryptoif.ExportBip39Validate, phrase)
}
