package soft

import (
	"context"
	"crypto/sha512"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	bip39Rounds   = 2048
	bip39SaltBase = "mnemonic"
)

func wordsToEntropyBits(words uint32) (int, bool) {
	switch words {
	case 12, 15, 18, 21, 24:
		return int(words / 3 * 32), true
	default:
		return 0, false
	}
}

func extBip39Generate(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, words := a.u32(), a.u32()
	if a.err != nil {
		return nil, a.err
	}
	bits, ok := wordsToEntropyBits(words)
	if !ok {
		return nil, trap("bip39: invalid word count %d", words)
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return nil, trap("bip39 entropy: %v", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, trap("bip39 mnemonic: %v", err)
	}
	return m.returnBytes(ret, []byte(phrase))
}

func extBip39ToEntropy(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, phrase := a.u32(), a.str()
	if a.err != nil {
		return nil, a.err
	}
	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return nil, trap("bip39 entropy: %v", err)
	}
	return m.returnBytes(ret, entropy)
}

// extBip39ToMiniSecret substrate 风格：对熵（而非助记词）做 PBKDF2，取前 32 字节
func extBip39ToMiniSecret(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, phrase, password := a.u32(), a.str(), a.str()
	if a.err != nil {
		return nil, a.err
	}
	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return nil, trap("bip39 entropy: %v", err)
	}
	seed := pbkdf2.Key(entropy, []byte(bip39SaltBase+password), bip39Rounds, kdfOutputLen, sha512.New)
	return m.returnBytes(ret, seed[:seedLen])
}

// extBip39ToSeed 标准 BIP39 种子的前 32 字节
func extBip39ToSeed(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ret, phrase, password := a.u32(), a.str(), a.str()
	if a.err != nil {
		return nil, a.err
	}
	seed, err := bip39.NewSeedWithErrorChecking(phrase, password)
	if err != nil {
		return nil, trap("bip39 seed: %v", err)
	}
	return m.returnBytes(ret, seed[:seedLen])
}

func extBip39Validate(_ context.Context, _ *Module, a *args) ([]uint64, error) {
	phrase := a.str()
	if a.err != nil {
		return nil, a.err
	}
	return returnBool(bip39.IsMnemonicValid(phrase))
}
