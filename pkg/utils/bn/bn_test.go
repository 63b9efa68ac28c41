package bn

import (
	"math/big"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHex(t *testing.T) {
	assert.Equal(t, "0x", ToHex(nil))
	assert.Equal(t, "0x0", ToHex(big.NewInt(0)))
	assert.Equal(t, "0x80", ToHex(big.NewInt(128)))
	assert.Equal(t, "0xffffffffffffffff", ToHex(new(big.Int).SetUint64(^uint64(0))))
	assert.Equal(t, "-0x10", ToHex(big.NewInt(-16)))
}

func TestSqrt(t *testing.T) {
	maxSafe := int64(1<<53 - 1)

	tests := []struct {
		value    interface{}
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{4, "2"},
		{256 * 256, "256"},
		{maxSafe, "94906265"},
		{new(big.Int).Add(big.NewInt(maxSafe), big.NewInt(256)), "94906265"},
		{new(big.Int).Mul(big.NewInt(12345678), big.NewInt(12345679)), "12345678"},
		{sdkmath.NewInt(256 * 256), "256"},
		{uint64(1) << 62, "2147483648"},
		{"0x10000", "256"},
		{"54866395443885995655625", "234235768925"},
		{
			"82120471531550314555681345949499512621827274120673745141541602816614526075010755373654280259022317599142038423759320355177481886719814621305828811322920076213800348341464996337890625",
			"9062034624274524065844376014975805577107171799890766992670739972241112960081909332275390625",
		},
	}

	for i, tt := range tests {
		got, err := Sqrt(tt.value)
		require.NoError(t, err, "case %d", i)
		assert.Equal(t, tt.expected, got.String(), "case %d", i)
	}
}

func TestSqrt_Errors(t *testing.T) {
	_, err := Sqrt(-1)
	assert.ErrorIs(t, err, ErrNegativeSqrt)

	_, err = Sqrt("not a number")
	assert.Error(t, err)

	_, err = Sqrt(1.5)
	assert.Error(t, err)
}
