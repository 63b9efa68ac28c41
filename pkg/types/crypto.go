// Package types 提供跨模块共享的密码学类型定义
package types

import "fmt"

// Scheme 签名方案标签
//
// 取值是封闭集合，验签分发表按该枚举建立索引。
type Scheme uint8

const (
	// SchemeNone 未匹配任何方案
	SchemeNone Scheme = iota
	// SchemeEd25519 Curve25519 上的 EdDSA
	SchemeEd25519
	// SchemeSr25519 Ristretto 上的 Schnorr（schnorrkel）
	SchemeSr25519
	// SchemeEcdsa secp256k1 ECDSA，消息摘要为 blake2b-256
	SchemeEcdsa
	// SchemeEthereum secp256k1 ECDSA，消息摘要为 keccak256
	SchemeEthereum
)

var schemeNames = [...]string{
	SchemeNone:     "none",
	SchemeEd25519:  "ed25519",
	SchemeSr25519:  "sr25519",
	SchemeEcdsa:    "ecdsa",
	SchemeEthereum: "ethereum",
}

// String 返回方案标签
func (s Scheme) String() string {
	if int(s) < len(schemeNames) {
		return schemeNames[s]
	}
	return fmt.Sprintf("scheme(%d)", uint8(s))
}

// ParseScheme 从标签解析签名方案
func ParseScheme(tag string) (Scheme, error) {
	for i, name := range schemeNames {
		if name == tag {
			return Scheme(i), nil
		}
	}
	return SchemeNone, fmt.Errorf("unknown signature scheme %q", tag)
}

// MarshalText 实现 encoding.TextMarshaler，便于 JSON 输出
func (s Scheme) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// VerifyResult 验签结果
type VerifyResult struct {
	// IsValid 是否有方案验证通过
	IsValid bool `json:"isValid"`
	// Crypto 验证通过的方案；未通过时为 none（多签路径下为选择字节对应的方案）
	Crypto Scheme `json:"crypto"`
}

// BackendKind 后端类型
type BackendKind uint8

const (
	// BackendNone 尚未装载
	BackendNone BackendKind = iota
	// BackendAccelerated 经 wazero 装载的 WASM 加速后端
	BackendAccelerated
	// BackendFallback 纯 Go 软件后端
	BackendFallback
)

// String 返回后端名称
func (k BackendKind) String() string {
	switch k {
	case BackendAccelerated:
		return "accelerated"
	case BackendFallback:
		return "fallback"
	default:
		return "none"
	}
}

// BackendState 后端装载状态机
//
//	Unloaded → Loading → Ready
//	Unloaded → Loading → FallbackReady
type BackendState int32

const (
	BackendUnloaded BackendState = iota
	BackendLoading
	BackendReady
	BackendFallbackReady
)

// String 返回状态名称
func (s BackendState) String() string {
	switch s {
	case BackendUnloaded:
		return "unloaded"
	case BackendLoading:
		return "loading"
	case BackendReady:
		return "ready"
	case BackendFallbackReady:
		return "fallback_ready"
	default:
		return "unknown"
	}
}

// Settled 装载是否已结束（加速或回退均可）
func (s BackendState) Settled() bool {
	return s == BackendReady || s == BackendFallbackReady
}
