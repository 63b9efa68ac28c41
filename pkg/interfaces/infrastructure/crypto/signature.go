package crypto

import "github.com/weisyn/wasmcrypto/pkg/types"

// SignatureVerifier 多方案签名验证入口
type SignatureVerifier interface {
	// Verify 验证签名
	// 参数：
	//   - message: 原始消息
	//   - signature: 64/65/66 字节签名（65/66 字节且首字节 ∈ {0,1,2} 时按多签格式处理）
	//   - addressOrPublicKey: 地址或公钥的原始字节
	//   - isExpanded: 仅对 ECDSA 系列生效，按 65 字节未压缩公钥比较
	//
	// 返回：验证结果；签名长度非法、地址非法或未知多签类型时返回错误
	Verify(message, signature, addressOrPublicKey []byte, isExpanded bool) (types.VerifyResult, error)
}

// AddressDecoder 地址解码器
type AddressDecoder interface {
	// Decode 将地址或公钥的输入形式解码为原始字节
	Decode(input []byte) ([]byte, error)
}
