package soft

import (
	"context"

	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
)

func (m *Module) exportTable() map[string]export {
	return map[string]export{
		cryptoif.ExportMalloc: {1, extMalloc},
		cryptoif.ExportFree:   {2, extFree},

		cryptoif.ExportBlake2b:   {6, extBlake2b},
		cryptoif.ExportKeccak256: {3, extKeccak256},
		cryptoif.ExportSha512:    {3, extSha512},
		cryptoif.ExportTwox:      {4, extTwox},
		cryptoif.ExportPbkdf2:    {6, extPbkdf2},
		cryptoif.ExportScrypt:    {8, extScrypt},

		cryptoif.ExportEdFromSeed: {3, extEdFromSeed},
		cryptoif.ExportEdSign:     {7, extEdSign},
		cryptoif.ExportEdVerify:   {6, extEdVerify},

		cryptoif.ExportSrFromSeed: {3, extSrFromSeed},
		cryptoif.ExportSrSign:     {7, extSrSign},
		cryptoif.ExportSrVerify:   {6, extSrVerify},

		cryptoif.ExportSecpFromSeed: {3, extSecpFromSeed},
		cryptoif.ExportSecpSign:     {5, extSecpSign},
		cryptoif.ExportSecpRecover:  {6, extSecpRecover},
		cryptoif.ExportSecpExpand:   {3, extSecpExpand},
		cryptoif.ExportSecpCompress: {3, extSecpCompress},

		cryptoif.ExportBip39Generate:     {2, extBip39Generate},
		cryptoif.ExportBip39ToEntropy:    {3, extBip39ToEntropy},
		cryptoif.ExportBip39ToMiniSecret: {5, extBip39ToMiniSecret},
		cryptoif.ExportBip39ToSeed:       {5, extBip39ToSeed},
		cryptoif.ExportBip39Validate:     {2, extBip39Validate},
	}
}

func extMalloc(_ context.Context, m *Module, a *args) ([]uint64, error) {
	size := a.u32()
	ptr, err := m.alloc.malloc(size)
	if err != nil {
		return nil, err
	}
	return []uint64{uint64(ptr)}, nil
}

func extFree(_ context.Context, m *Module, a *args) ([]uint64, error) {
	ptr, size := a.u32(), a.u32()
	m.alloc.free(ptr, size)
	return nil, nil
}
