// Package crypto 定义密码学执行桥的接口
//
// 🔐 **密码学执行桥 (Cryptographic Execution Bridge)**
//
// 本文件定义执行桥两侧的契约：
// - Module：被装载的后端（wazero 加速实例或纯 Go 软件实现），二者共享同一套导出 ABI
// - Memory：后端线性内存的最小读写视图
// - Bridge：调用方可见的就绪状态查询
//
// 🏗️ **ABI 约定**
// - 参数以 (ptr, len) 形式写入线性内存，内存由 __wbindgen_malloc 分配、__wbindgen_free 释放
// - 返回缓冲区的导出把 (ptr u32 LE, len u32 LE) 写到调用方给出的结果指针
// - 返回布尔值的导出直接返回 i32
package crypto

import (
	"context"

	"github.com/weisyn/wasmcrypto/pkg/types"
)

// 必需的导出名
const (
	ExportMemory = "memory"
	ExportMalloc = "__wbindgen_malloc"
	ExportFree   = "__wbindgen_free"
)

// Memory 线性内存视图
//
// Read 返回的切片可能直接引用底层内存，调用方不得跨调用持有。
// wazero 的 api.Memory 天然满足该接口。
type Memory interface {
	Size() uint32
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
	ReadUint32Le(offset uint32) (uint32, bool)
}

// Module 已装载的后端模块
type Module interface {
	// Memory 返回线性内存；每次调用都应重新获取，内存增长后旧视图可能失效
	Memory() Memory

	// Call 调用导出函数，参数与返回值均为 wasm 数值的 uint64 编码
	Call(ctx context.Context, export string, params ...uint64) ([]uint64, error)

	// HasExport 判断导出函数是否存在
	HasExport(export string) bool

	// Close 释放模块资源
	Close(ctx context.Context) error
}

// Bridge 执行桥就绪状态
type Bridge interface {
	// IsReady 同步查询后端是否已就绪（加速或回退）
	IsReady() bool

	// WaitReady 等待装载结束；装载结束后恒返回 true，ctx 结束时返回 false
	WaitReady(ctx context.Context) bool

	// State 当前装载状态
	State() types.BackendState

	// Kind 最终胜出的后端类型
	Kind() types.BackendKind
}
