package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.Bytes()
}

func TestStatusCommand(t *testing.T) {
	var info statusInfo
	require.NoError(t, json.Unmarshal(run(t, "status"), &info))
	assert.Equal(t, "fallback_ready", info.State)
	assert.Equal(t, "fallback", info.Backend)
	assert.NotEmpty(t, info.LoadError)
}

func TestHashCommand(t *testing.T) {
	var out map[string]string
	require.NoError(t, json.Unmarshal(run(t, "hash", "blake2b", "abc"), &out))
	assert.Equal(t, "0xbddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319", out["hash"])
}

func TestMnemonicCommands(t *testing.T) {
	const phrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	var valid map[string]bool
	require.NoError(t, json.Unmarshal(run(t, "mnemonic", "validate", phrase), &valid))
	assert.True(t, valid["valid"])

	var seed map[string]string
	require.NoError(t, json.Unmarshal(run(t, "mnemonic", "seed", phrase, "-p", "TREZOR", "--bytes", "32"), &seed))
	assert.Equal(t, "0xc55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e5349553", seed["seed"])

	var addr map[string]string
	require.NoError(t, json.Unmarshal(run(t, "mnemonic", "address", phrase, "-p", "", "--scheme", "ed25519"), &addr))
	assert.Equal(t, "ed25519", addr["scheme"])
	assert.NotEmpty(t, addr["address"])
}

func TestVerifyCommand(t *testing.T) {
	// RFC 8032 测试向量 1：空消息
	const (
		pub = "0xd75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
		sig = "0xe5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b"
	)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(run(t, "verify", "-m", "", "-s", sig, "-a", pub), &res))
	assert.Equal(t, true, res["isValid"])
	assert.Equal(t, "ed25519", res["crypto"])

	require.NoError(t, json.Unmarshal(run(t, "verify", "-m", "x", "-s", sig, "-a", pub, "--cache"), &res))
	assert.Equal(t, false, res["isValid"])
	assert.Equal(t, "none", res["crypto"])
}
