package address

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alicePublicKey = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	aliceSS58      = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
)

func TestDecodeString_SS58(t *testing.T) {
	d := NewDecoder()

	key, err := d.DecodeString(aliceSS58)
	require.NoError(t, err)
	assert.Equal(t, alicePublicKey, hex.EncodeToString(key))

	t.Run("校验和错误", func(t *testing.T) {
		broken := aliceSS58[:len(aliceSS58)-1] + "Z"
		_, err := d.DecodeString(broken)
		assert.ErrorIs(t, err, ErrInvalidChecksum)
	})

	t.Run("非 base58 字符", func(t *testing.T) {
		_, err := d.DecodeString("0OIl")
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("前缀限制", func(t *testing.T) {
		_, err := NewDecoderWithPrefix(42).DecodeString(aliceSS58)
		assert.NoError(t, err)

		_, err = NewDecoderWithPrefix(0).DecodeString(aliceSS58)
		assert.ErrorIs(t, err, ErrPrefixMismatch)
	})
}

func TestEncode_RoundTrip(t *testing.T) {
	key, err := hex.DecodeString(alicePublicKey)
	require.NoError(t, err)

	addr, err := Encode(key, 42)
	require.NoError(t, err)
	assert.Equal(t, aliceSS58, addr)

	for _, prefix := range []uint16{0, 2, 63, 64, 255, 1284, 16383} {
		addr, err := Encode(key, prefix)
		require.NoError(t, err, "prefix %d", prefix)

		decoded, err := NewDecoderWithPrefix(prefix).DecodeString(addr)
		require.NoError(t, err, "prefix %d", prefix)
		assert.Equal(t, key, decoded)
	}

	compressed := append([]byte{0x02}, key...)
	addr, err = Encode(compressed, 42)
	require.NoError(t, err)
	decoded, err := NewDecoder().DecodeString(addr)
	require.NoError(t, err)
	assert.Equal(t, compressed, decoded)

	_, err = Encode(key[:5], 42)
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = Encode(key, 46)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDecodeString_Hex(t *testing.T) {
	d := NewDecoder()

	key, err := d.DecodeString("0x" + alicePublicKey)
	require.NoError(t, err)
	assert.Equal(t, alicePublicKey, hex.EncodeToString(key))

	_, err = d.DecodeString("0x123")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = d.DecodeString("0x1234")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = d.DecodeString("")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDecode_Raw(t *testing.T) {
	d := NewDecoder()
	for _, n := range []int{20, 32, 33, 64, 65} {
		raw := make([]byte, n)
		raw[0] = 1
		out, err := d.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, out)
	}

	_, err := d.Decode(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
