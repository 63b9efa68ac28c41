// Package address 提供地址与公钥的解码
//
// 支持三种输入：原始公钥字节、0x 十六进制字符串、SS58 地址（base58 编码，
// 校验和为 blake2b-512("SS58PRE" ‖ payload) 的前 1 或 2 字节，网络前缀占 1 或 2 字节）。
package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"

	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/hash"
	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
)

var (
	// ErrInvalidAddress 无效的地址格式
	ErrInvalidAddress = errors.New("invalid address format")
	// ErrInvalidChecksum 校验和错误
	ErrInvalidChecksum = errors.New("invalid address checksum")
	// ErrPrefixMismatch 网络前缀与期望不符
	ErrPrefixMismatch = errors.New("address prefix mismatch")
)

var ss58Prefix = []byte("SS58PRE")

// 解码后 base58 负载允许的长度
var allowedDecodedLengths = map[int]bool{3: true, 4: true, 6: true, 10: true, 35: true, 36: true, 37: true, 38: true}

// 编码时允许的公钥长度
var allowedEncodeLengths = map[int]bool{1: true, 2: true, 4: true, 8: true, 32: true, 33: true}

// 原始字节输入允许的长度：以太坊地址、ed25519/sr25519 公钥、secp256k1 压缩/未压缩公钥
var allowedRawLengths = map[int]bool{20: true, 32: true, 33: true, 64: true, 65: true}

// Decoder 地址解码器
type Decoder struct {
	// prefix 为 nil 时接受任意网络前缀
	prefix *uint16
}

var _ cryptoif.AddressDecoder = (*Decoder)(nil)

// NewDecoder 创建不限制网络前缀的解码器
func NewDecoder() *Decoder {
	return &Decoder{}
}

// NewDecoderWithPrefix 只接受指定网络前缀的 SS58 地址
func NewDecoderWithPrefix(prefix uint16) *Decoder {
	return &Decoder{prefix: &prefix}
}

// Decode 原始字节按公钥/地址原样返回（长度需合法）
func (d *Decoder) Decode(input []byte) ([]byte, error) {
	if !allowedRawLengths[len(input)] {
		return nil, fmt.Errorf("%w: unexpected raw length %d", ErrInvalidAddress, len(input))
	}
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

// DecodeString 解码 0x 十六进制或 SS58 地址
func (d *Decoder) DecodeString(input string) ([]byte, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidAddress)
	}
	if strings.HasPrefix(input, "0x") {
		raw, err := hexutil.Decode(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
		return d.Decode(raw)
	}
	return d.decodeSS58(input)
}

func (d *Decoder) decodeSS58(input string) ([]byte, error) {
	decoded, err := base58.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if !allowedDecodedLengths[len(decoded)] {
		return nil, fmt.Errorf("%w: invalid decoded length %d", ErrInvalidAddress, len(decoded))
	}

	prefix, prefixLen, err := decodePrefix(decoded)
	if err != nil {
		return nil, err
	}

	isPublicKey := len(decoded) == 34+prefixLen || len(decoded) == 35+prefixLen
	checksumLen := 1
	if isPublicKey {
		checksumLen = 2
	}
	end := len(decoded) - checksumLen
	if end <= prefixLen {
		return nil, fmt.Errorf("%w: payload too short", ErrInvalidAddress)
	}

	sum := checksum(decoded[:end])
	for i := 0; i < checksumLen; i++ {
		if decoded[end+i] != sum[i] {
			return nil, fmt.Errorf("%w: %s", ErrInvalidChecksum, input)
		}
	}

	if d.prefix != nil && *d.prefix != prefix {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrPrefixMismatch, *d.prefix, prefix)
	}

	out := make([]byte, end-prefixLen)
	copy(out, decoded[prefixLen:end])
	return out, nil
}

// decodePrefix 解析 1 或 2 字节的网络前缀
func decodePrefix(decoded []byte) (uint16, int, error) {
	first := decoded[0]
	if first&0x80 != 0 || first == 46 || first == 47 {
		return 0, 0, fmt.Errorf("%w: reserved prefix byte %d", ErrInvalidAddress, first)
	}
	if first&0x40 == 0 {
		return uint16(first), 1, nil
	}
	second := decoded[1]
	prefix := uint16(first&0x3f)<<2 | uint16(second>>6) | uint16(second&0x3f)<<8
	return prefix, 2, nil
}

func checksum(payload []byte) []byte {
	data := make([]byte, 0, len(ss58Prefix)+len(payload))
	data = append(data, ss58Prefix...)
	data = append(data, payload...)
	return hash.Blake2b512(data)
}

// Encode 将公钥编码为 SS58 地址
func Encode(key []byte, prefix uint16) (string, error) {
	if !allowedEncodeLengths[len(key)] {
		return "", fmt.Errorf("%w: cannot encode key of length %d", ErrInvalidAddress, len(key))
	}
	if prefix > 16383 || prefix == 46 || prefix == 47 {
		return "", fmt.Errorf("%w: prefix %d out of range", ErrInvalidAddress, prefix)
	}

	var payload []byte
	if prefix < 64 {
		payload = append(payload, byte(prefix))
	} else {
		payload = append(payload,
			byte((prefix&0xfc)>>2)|0x40,
			byte(prefix>>8)|byte((prefix&0x03)<<6),
		)
	}
	payload = append(payload, key...)

	checksumLen := 1
	if len(key) == 32 || len(key) == 33 {
		checksumLen = 2
	}
	sum := checksum(payload)
	payload = append(payload, sum[:checksumLen]...)
	return base58.Encode(payload), nil
}
