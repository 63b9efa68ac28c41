package signature

import (
	"errors"
	"fmt"
)

// 错误定义
var (
	// ErrInvalidSignatureLength 签名长度不在 {64,65,66} 中
	ErrInvalidSignatureLength = errors.New("invalid signature length")
	// ErrUnknownCryptoType 多签选择字节不在 {0,1,2} 中
	ErrUnknownCryptoType = errors.New("unknown crypto type")
	// ErrUnsupportedInput 输入既不是字节也不是字符串
	ErrUnsupportedInput = errors.New("unsupported input type")
)

// InvalidSignatureLengthError 签名长度无效
type InvalidSignatureLengthError struct {
	Got int
}

func (e *InvalidSignatureLengthError) Error() string {
	return fmt.Sprintf("%s, expected [64..66] bytes, found %d", ErrInvalidSignatureLength.Error(), e.Got)
}

func (e *InvalidSignatureLengthError) Unwrap() error { return ErrInvalidSignatureLength }

// UnknownCryptoTypeError 未知的多签选择字节
type UnknownCryptoTypeError struct {
	Selector byte
}

func (e *UnknownCryptoTypeError) Error() string {
	return fmt.Sprintf("%s, expected signature prefix [0..2], found %d", ErrUnknownCryptoType.Error(), e.Selector)
}

func (e *UnknownCryptoTypeError) Unwrap() error { return ErrUnknownCryptoType }
