// Package testutil 提供测试用的手写 WASM 模块
package testutil

// EchoModule 最小的 wasm-bindgen 风格模块
//
// 导出：
//   - memory（1 页）
//   - __wbindgen_malloc(size) -> ptr：从 1024 开始的 bump 分配
//   - __wbindgen_free(ptr, size)：空操作
//   - ext_echo(ret, ptr, len)：把 (ptr, len) 原样写回 ret
func EchoModule() []byte {
	return []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		// type
		0x01, 0x11, 0x03,
		0x60, 0x01, 0x7f, 0x01, 0x7f,
		0x60, 0x02, 0x7f, 0x7f, 0x00,
		0x60, 0x03, 0x7f, 0x7f, 0x7f, 0x00,
		// function
		0x03, 0x04, 0x03, 0x00, 0x01, 0x02,
		// memory
		0x05, 0x03, 0x01, 0x00, 0x01,
		// global: mut i32 = 1024
		0x06, 0x07, 0x01, 0x7f, 0x01, 0x41, 0x80, 0x08, 0x0b,
		// export
		0x07, 0x3b, 0x04,
		0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
		0x11, '_', '_', 'w', 'b', 'i', 'n', 'd', 'g', 'e', 'n', '_', 'm', 'a', 'l', 'l', 'o', 'c', 0x00, 0x00,
		0x0f, '_', '_', 'w', 'b', 'i', 'n', 'd', 'g', 'e', 'n', '_', 'f', 'r', 'e', 'e', 0x00, 0x01,
		0x08, 'e', 'x', 't', '_', 'e', 'c', 'h', 'o', 0x00, 0x02,
		// code
		0x0a, 0x21, 0x03,
		0x0b, 0x00, 0x23, 0x00, 0x23, 0x00, 0x20, 0x00, 0x6a, 0x24, 0x00, 0x0b,
		0x02, 0x00, 0x0b,
		0x10, 0x00, 0x20, 0x00, 0x20, 0x01, 0x36, 0x02, 0x00, 0x20, 0x00, 0x20, 0x02, 0x36, 0x02, 0x04, 0x0b,
	}
}

// EmptyModule 合法但没有任何导出的模块
func EmptyModule() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

// MissingImportModule 导入 wbg.nope(i32)，宿主未提供时实例化失败
func MissingImportModule() []byte {
	return []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x05, 0x01, 0x60, 0x01, 0x7f, 0x00,
		0x02, 0x0c, 0x01, 0x03, 'w', 'b', 'g', 0x04, 'n', 'o', 'p', 'e', 0x00, 0x00,
	}
}

// GarbageModule 魔数错误的字节
func GarbageModule() []byte {
	return []byte("definitely not a wasm module")
}

// TrapModule start 段执行 unreachable，实例化时陷入
func TrapModule() []byte {
	return []byte{
		0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
		0x01, 0x04, 0x01, 0x60, 0x00, 0x00,
		0x03, 0x02, 0x01, 0x00,
		0x08, 0x01, 0x00,
		0x0a, 0x05, 0x01, 0x03, 0x00, 0x00, 0x0b,
	}
}
