package bridge

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"lukechampine.com/frand"

	"github.com/weisyn/wasmcrypto/internal/core/engines/wasm/engine"
)

// ImportModuleName wasm-bindgen 生成代码使用的导入模块名
const ImportModuleName = "wbg"

// DefaultImports 加速后端需要的宿主导入
//
//   - __wbg_getRandomValues(ptr, len)：填充随机字节（助记词生成、签名随机数）
//   - __wbindgen_throw(ptr, len)：以 UTF-8 消息中止当前调用
func DefaultImports() engine.ImportTable {
	return engine.ImportTable{
		{
			Name: ImportModuleName,
			Functions: []engine.HostFunction{
				{Name: "__wbg_getRandomValues", Fn: hostGetRandomValues},
				{Name: "__wbindgen_throw", Fn: hostThrow},
			},
		},
	}
}

func hostGetRandomValues(_ context.Context, m api.Module, ptr, n uint32) {
	buf := make([]byte, n)
	frand.Read(buf)
	if !m.Memory().Write(ptr, buf) {
		panic(fmt.Errorf("%w: getRandomValues(%d, %d)", ErrMemoryAccess, ptr, n))
	}
}

func hostThrow(_ context.Context, m api.Module, ptr, n uint32) {
	msg, ok := m.Memory().Read(ptr, n)
	if !ok {
		panic(fmt.Errorf("%w: throw(%d, %d)", ErrMemoryAccess, ptr, n))
	}
	panic(fmt.Errorf("wasm backend threw: %s", string(msg)))
}
