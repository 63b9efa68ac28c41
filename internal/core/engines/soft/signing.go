package soft

import (
	"context"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/btcsuite/btcd/btcec/v2"
	btcec_ecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/cloudflare/circl/sign/ed25519"

	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
)

const (
	seedLen          = 32
	edPublicLen      = ed25519.PublicKeySize
	edSignatureLen   = ed25519.SignatureSize
	srPublicLen      = 32
	srSignatureLen   = 64
	secpHashLen      = 32
	secpCompactLen   = 64
	compactHeaderCmp = 27 + 4 // 压缩公钥的 compact 签名头基数
)

// ========== ed25519 ==========

// extEdFromSeed 返回 secret(32) ‖ public(32)
func extEdFromSeed(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, seed := a.u32(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	if len(seed) != seedLen {
		return nil, trap("ed25519 seed must be %d bytes, got %d", seedLen, len(seed))
	}
	return m.returnBytes(ret, ed25519.NewKeyFromSeed(seed))
}

func extEdSign(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, _, sec, msg := a.u32(), a.bytes(), a.bytes(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	if len(sec) < seedLen {
		return nil, trap("ed25519 secret must be at least %d bytes, got %d", seedLen, len(sec))
	}
	priv := ed25519.NewKeyFromSeed(sec[:seedLen])
	return m.returnBytes(ret, ed25519.Sign(priv, msg))
}

func extEdVerify(_ context.Context, _ *Module, a *args) ([]uint64, error) {
	sig, msg, pub := a.bytes(), a.bytes(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	if len(sig) != edSignatureLen || len(pub) != edPublicLen {
		return returnBool(false)
	}
	return returnBool(ed25519.Verify(pub, msg, sig))
}

// ========== sr25519 ==========

func srSecret(sec []byte) (*schnorrkel.SecretKey, error) {
	if len(sec) < seedLen {
		return nil, trap("sr25519 secret must be at least %d bytes, got %d", seedLen, len(sec))
	}
	var raw [seedLen]byte
	copy(raw[:], sec[:seedLen])
	mini, err := schnorrkel.NewMiniSecretKeyFromRaw(raw)
	if err != nil {
		return nil, trap("sr25519 mini secret: %v", err)
	}
	return mini.ExpandEd25519(), nil
}

// extSrFromSeed 返回 mini secret(32) ‖ public(32)
func extSrFromSeed(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, seed := a.u32(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	if len(seed) != seedLen {
		return nil, trap("sr25519 seed must be %d bytes, got %d", seedLen, len(seed))
	}
	var raw [seedLen]byte
	copy(raw[:], seed)
	mini, err := schnorrkel.NewMiniSecretKeyFromRaw(raw)
	if err != nil {
		return nil, trap("sr25519 mini secret: %v", err)
	}
	pub := mini.Public().Encode()

	out := make([]byte, 0, seedLen+srPublicLen)
	out = append(out, seed...)
	out = append(out, pub[:]...)
	return m.returnBytes(ret, out)
}

func extSrSign(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, _, sec, msg := a.u32(), a.bytes(), a.bytes(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	sk, err := srSecret(sec)
	if err != nil {
		return nil, err
	}
	t := schnorrkel.NewSigningContext([]byte(cryptoif.SubstrateSigningContext), msg)
	sig, err := sk.Sign(t)
	if err != nil {
		return nil, trap("sr25519 sign: %v", err)
	}
	enc := sig.Encode()
	return m.returnBytes(ret, enc[:])
}

func extSrVerify(_ context.Context, _ *Module, a *args) ([]uint64, error) {
	sigBytes, msg, pubBytes := a.bytes(), a.bytes(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	if len(sigBytes) != srSignatureLen || len(pubBytes) != srPublicLen {
		return returnBool(false)
	}

	var sigRaw [srSignatureLen]byte
	copy(sigRaw[:], sigBytes)
	sig := &schnorrkel.Signature{}
	if err := sig.Decode(sigRaw); err != nil {
		return returnBool(false)
	}

	var pubRaw [srPublicLen]byte
	copy(pubRaw[:], pubBytes)
	pub := &schnorrkel.PublicKey{}
	if err := pub.Decode(pubRaw); err != nil {
		return returnBool(false)
	}

	t := schnorrkel.NewSigningContext([]byte(cryptoif.SubstrateSigningContext), msg)
	ok, err := pub.Verify(sig, t)
	if err != nil {
		return returnBool(false)
	}
	return returnBool(ok)
}

// ========== secp256k1 ==========

// extSecpFromSeed 返回 secret(32) ‖ compressed public(33)
func extSecpFromSeed(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, seed := a.u32(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	if len(seed) != seedLen {
		return nil, trap("secp256k1 seed must be %d bytes, got %d", seedLen, len(seed))
	}
	priv, pub := btcec.PrivKeyFromBytes(seed)
	out := make([]byte, 0, seedLen+btcec.PubKeyBytesLenCompressed)
	out = append(out, priv.Serialize()...)
	out = append(out, pub.SerializeCompressed()...)
	return m.returnBytes(ret, out)
}

// extSecpSign 返回 r(32) ‖ s(32) ‖ recid(1)
func extSecpSign(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, hash, sec := a.u32(), a.bytes(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	if len(hash) != secpHashLen {
		return nil, trap("secp256k1 hash must be %d bytes, got %d", secpHashLen, len(hash))
	}
	if len(sec) != seedLen {
		return nil, trap("secp256k1 secret must be %d bytes, got %d", seedLen, len(sec))
	}
	priv, _ := btcec.PrivKeyFromBytes(sec)
	compact := btcec_ecdsa.SignCompact(priv, hash, true) // header + r + s

	out := make([]byte, secpCompactLen+1)
	copy(out, compact[1:])
	out[secpCompactLen] = compact[0] - compactHeaderCmp
	return m.returnBytes(ret, out)
}

func extSecpRecover(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, hash, sig, recid := a.u32(), a.bytes(), a.bytes(), a.u32()
	if a.err != nil {
		return nil, a.err
	}
	if len(hash) != secpHashLen || len(sig) != secpCompactLen || recid > 3 {
		return nil, trap("secp256k1 recover: invalid input (hash=%d sig=%d recid=%d)", len(hash), len(sig), recid)
	}
	compact := make([]byte, 0, secpCompactLen+1)
	compact = append(compact, byte(compactHeaderCmp+recid))
	compact = append(compact, sig...)

	pub, _, err := btcec_ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, trap("secp256k1 recover: %v", err)
	}
	return m.returnBytes(ret, pub.SerializeCompressed())
}

func extSecpExpand(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, raw := a.u32(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, trap("secp256k1 expand: %v", err)
	}
	return m.returnBytes(ret, pub.SerializeUncompressed())
}

func extSecpCompress(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, raw := a.u32(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, trap("secp256k1 compress: %v", err)
	}
	return m.returnBytes(ret, pub.SerializeCompressed())
}
