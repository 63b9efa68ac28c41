package signature

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

// cacheKeyPrefix 缓存键前缀
var cacheKeyPrefix = []byte("sigcache/")

// CachedVerifier 以存储缓存验签结果
//
// 验签结果只取决于 (message, signature, publicKey, isExpanded)，相同输入直接返回缓存。
// 出错的输入不缓存。
type CachedVerifier struct {
	verifier *Verifier
	store    storage.Store
}

// NewCachedVerifier 创建带缓存的验证器
func NewCachedVerifier(verifier *Verifier, store storage.Store) *CachedVerifier {
	return &CachedVerifier{verifier: verifier, store: store}
}

// Verify 与 Verifier.VerifyContext 语义相同
func (c *CachedVerifier) Verify(ctx context.Context, message, signature, addressOrPublicKey []byte, isExpanded bool) (types.VerifyResult, bool, error) {
	key := cacheKey(message, signature, addressOrPublicKey, isExpanded)

	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return types.VerifyResult{}, false, fmt.Errorf("读取验签缓存失败: %w", err)
	}
	if raw != nil {
		var cached cacheEntry
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.result(), true, nil
		}
	}

	result, err := c.verifier.VerifyContext(ctx, message, signature, addressOrPublicKey, isExpanded)
	if err != nil {
		return result, false, err
	}

	encoded, err := json.Marshal(newCacheEntry(result))
	if err != nil {
		return result, false, err
	}
	if err := c.store.Set(ctx, key, encoded); err != nil {
		return result, false, fmt.Errorf("写入验签缓存失败: %w", err)
	}
	return result, false, nil
}

// SignatureVerify 按 Verifier.DecodeInputs 的规则解码输入后经缓存验证
func (c *CachedVerifier) SignatureVerify(ctx context.Context, message, signature, addressOrPublicKey interface{}, isExpanded bool) (types.VerifyResult, bool, error) {
	msg, sig, publicKey, err := c.verifier.DecodeInputs(message, signature, addressOrPublicKey)
	if err != nil {
		return types.VerifyResult{}, false, err
	}
	return c.Verify(ctx, msg, sig, publicKey, isExpanded)
}

// cacheEntry 持久化形式，方案以标签保存
type cacheEntry struct {
	IsValid bool   `json:"isValid"`
	Crypto  string `json:"crypto"`
}

func newCacheEntry(r types.VerifyResult) cacheEntry {
	return cacheEntry{IsValid: r.IsValid, Crypto: r.Crypto.String()}
}

func (e cacheEntry) result() types.VerifyResult {
	scheme, err := types.ParseScheme(e.Crypto)
	if err != nil {
		scheme = types.SchemeNone
	}
	return types.VerifyResult{IsValid: e.IsValid, Crypto: scheme}
}

// cacheKey 对各字段做长度前缀后取 blake2b-256
func cacheKey(message, signature, publicKey []byte, isExpanded bool) []byte {
	h, _ := blake2b.New256(nil)
	for _, part := range [][]byte{message, signature, publicKey} {
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(len(part)))
		h.Write(n[:])
		h.Write(part)
	}
	if isExpanded {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	return append(append([]byte{}, cacheKeyPrefix...), h.Sum(nil)...)
}
