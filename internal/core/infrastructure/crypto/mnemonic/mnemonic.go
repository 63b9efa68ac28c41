// Package mnemonic 提供 BIP39 助记词到种子的转换
package mnemonic

import (
	"context"
	"errors"
	"fmt"

	"github.com/tyler-smith/go-bip39"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/primitives"
)

var (
	// ErrInvalidMnemonic 助记词校验失败
	ErrInvalidMnemonic = errors.New("invalid bip39 mnemonic specified")
	// ErrInvalidByteLength 种子长度只支持 32 或 64
	ErrInvalidByteLength = errors.New("wrong byte length for legacy seed")
)

// Service 助记词服务
type Service struct {
	prims *primitives.Primitives
}

// NewService 创建助记词服务，prims 可为 nil（只走纯 Go 路径）
func NewService(prims *primitives.Primitives) *Service {
	return &Service{prims: prims}
}

func (s *Service) accelerated(onlyGo bool) bool {
	return !onlyGo && s.prims != nil && s.prims.IsReady()
}

// Validate 校验助记词
func (s *Service) Validate(ctx context.Context, phrase string) bool {
	if s.accelerated(false) {
		if ok, err := s.prims.Bip39Validate(ctx, phrase); err == nil {
			return ok
		}
	}
	return bip39.IsMnemonicValid(phrase)
}

// Generate 生成指定词数的助记词（12/15/18/21/24）
func (s *Service) Generate(ctx context.Context, words int) (string, error) {
	if s.accelerated(false) {
		return s.prims.Bip39Generate(ctx, uint32(words))
	}
	bits, err := entropyBits(words)
	if err != nil {
		return "", err
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("生成熵失败: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// ToLegacySeed 由助记词生成兼容以太坊/比特币的种子
//
// byteLength 为 32 时，后端就绪且 onlyGo 为 false 则使用后端 bip39_to_seed，
// 否则取 BIP39 种子前 32 字节；为 0 或 64 时返回完整 64 字节 BIP39 种子。
func (s *Service) ToLegacySeed(ctx context.Context, phrase, password string, onlyGo bool, byteLength int) ([]byte, error) {
	if !s.Validate(ctx, phrase) {
		return nil, ErrInvalidMnemonic
	}

	switch byteLength {
	case 32:
		if s.accelerated(onlyGo) {
			return s.prims.Bip39ToSeed(ctx, phrase, password)
		}
		seed, err := bip39.NewSeedWithErrorChecking(phrase, password)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
		}
		return seed[:32], nil
	case 0, 64:
		seed, err := bip39.NewSeedWithErrorChecking(phrase, password)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
		}
		return seed, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidByteLength, byteLength)
	}
}

// ToMiniSecret 由助记词生成 32 字节 sr25519/ed25519 迷你私钥（需要后端就绪）
func (s *Service) ToMiniSecret(ctx context.Context, phrase, password string) ([]byte, error) {
	if !s.Validate(ctx, phrase) {
		return nil, ErrInvalidMnemonic
	}
	if s.prims == nil {
		return nil, errors.New("primitives not configured")
	}
	return s.prims.Bip39ToMiniSecret(ctx, phrase, password)
}

func entropyBits(words int) (int, error) {
	switch words {
	case 12, 15, 18, 21, 24:
		return words / 3 * 32, nil
	default:
		return 0, fmt.Errorf("unsupported word count %d", words)
	}
}
