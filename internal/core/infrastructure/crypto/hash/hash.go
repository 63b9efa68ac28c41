// Package hash 提供验签所需的摘要计算
//
// 执行桥就绪时走后端原语，否则使用纯 Go 实现；两条路径结果一致。
package hash

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/primitives"
)

// Blake2b256 blake2b-256
func Blake2b256(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

// Blake2b512 blake2b-512
func Blake2b512(data []byte) []byte {
	sum := blake2b.Sum512(data)
	return sum[:]
}

// Keccak256 以太坊使用的 legacy keccak-256
func Keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// ConstantTimeCompare 在常量时间内比较两个哈希值是否相等
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// HashService 按执行桥就绪状态选择实现
type HashService struct {
	prims *primitives.Primitives
}

// NewHashService 创建哈希服务；prims 可为 nil
func NewHashService(prims *primitives.Primitives) *HashService {
	return &HashService{prims: prims}
}

func (s *HashService) accelerated() bool {
	return s.prims != nil && s.prims.IsReady()
}

// Blake2b256 blake2b-256
func (s *HashService) Blake2b256(ctx context.Context, data []byte) ([]byte, error) {
	if s.accelerated() {
		return s.prims.Blake2b(ctx, data, nil, 32)
	}
	return Blake2b256(data), nil
}

// Keccak256 keccak-256
func (s *HashService) Keccak256(ctx context.Context, data []byte) ([]byte, error) {
	if s.accelerated() {
		return s.prims.Keccak256(ctx, data)
	}
	return Keccak256(data), nil
}
