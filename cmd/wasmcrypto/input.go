package main

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// decodeInput 0x 开头按十六进制解码，否则取 UTF-8 字节
func decodeInput(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") {
		return hexutil.Decode(s)
	}
	return []byte(s), nil
}
