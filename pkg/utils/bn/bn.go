// Package bn 提供大整数辅助函数
package bn

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// ErrNegativeSqrt 负数不支持开平方
var ErrNegativeSqrt = errors.New("square root of negative numbers is not supported")

const zeroHex = "0x"

// ToHex 转换为 0x 前缀的小写十六进制；nil 返回 "0x"
func ToHex(value *big.Int) string {
	if value == nil {
		return zeroHex
	}
	if value.Sign() < 0 {
		return "-" + zeroHex + new(big.Int).Neg(value).Text(16)
	}
	return zeroHex + value.Text(16)
}

// ToBigInt 将整数、十进制/0x 十六进制字符串、*big.Int 或 sdkmath.Int 转为 *big.Int
func ToBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case *big.Int:
		if v == nil {
			return new(big.Int), nil
		}
		return new(big.Int).Set(v), nil
	case sdkmath.Int:
		if v.IsNil() {
			return new(big.Int), nil
		}
		return v.BigInt(), nil
	case string:
		s := strings.TrimSpace(v)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s, base = s[2:], 16
		}
		out, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported integer type %T", value)
	}
}

// Sqrt 整数平方根（向下取整）
func Sqrt(value interface{}) (*big.Int, error) {
	n, err := ToBigInt(value)
	if err != nil {
		return nil, err
	}
	if n.Sign() < 0 {
		return nil, ErrNegativeSqrt
	}
	return new(big.Int).Sqrt(n), nil
}
