package soft

import (
	"context"
	"crypto/sha512"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// 派生函数输出长度
const kdfOutputLen = 64

func extBlake2b(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, data, key, size := a.u32(), a.bytes(), a.bytes(), a.u32()
	if a.err != nil {
		return nil, a.err
	}
	h, err := blake2b.New(int(size), key)
	if err != nil {
		return nil, trap("blake2b: %v", err)
	}
	h.Write(data)
	return m.returnBytes(ret, h.Sum(nil))
}

func extKeccak256(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, data := a.u32(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	return m.returnBytes(ret, ethcrypto.Keccak256(data))
}

func extSha512(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, data := a.u32(), a.bytes()
	if a.err != nil {
		return nil, a.err
	}
	sum := sha512.Sum512(data)
	return m.returnBytes(ret, sum[:])
}

// extTwox xxhash64，第 i 轮使用种子 i，结果按小端拼接
func extTwox(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, data, rounds := a.u32(), a.bytes(), a.u32()
	if a.err != nil {
		return nil, a.err
	}
	if rounds == 0 || rounds > 8 {
		return nil, trap("twox: invalid rounds %d", rounds)
	}
	out := make([]byte, 8*rounds)
	for i := uint32(0); i < rounds; i++ {
		h := xxhash.NewWithSeed(uint64(i))
		h.Write(data)
		binary.LittleEndian.PutUint64(out[8*i:], h.Sum64())
	}
	return m.returnBytes(ret, out)
}

func extPbkdf2(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, data, salt, rounds := a.u32(), a.bytes(), a.bytes(), a.u32()
	if a.err != nil {
		return nil, a.err
	}
	if rounds == 0 {
		return nil, trap("pbkdf2: rounds must be positive")
	}
	return m.returnBytes(ret, pbkdf2.Key(data, salt, int(rounds), kdfOutputLen, sha512.New))
}

func extScrypt(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, password, salt := a.u32(), a.bytes(), a.bytes()
	log2n, r, p := a.u32(), a.u32(), a.u32()
	if a.err != nil {
		return nil, a.err
	}
	if log2n == 0 || log2n > 30 {
		return nil, trap("scrypt: invalid log2n %d", log2n)
	}
	key, err := scrypt.Key(password, salt, 1<<log2n, int(r), int(p), kdfOutputLen)
	if err != nil {
		return nil, trap("scrypt: %v", err)
	}
	return m.returnBytes(ret, key)
}
