// Package soft 提供纯 Go 的密码学后端
//
// 与 WASM 加速后端共享同一套导出 ABI：参数通过线性内存中的 (ptr, len) 传入，
// 缓冲区结果写回调用方给出的结果指针。加速后端无法装载时由执行桥启用。
package soft

import (
	"context"
	"errors"
	"fmt"
	"sort"

	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
)

var (
	// ErrTrap 导出函数执行失败，对应 WASM 中的 unreachable
	ErrTrap = errors.New("soft backend trap")
	// ErrUnknownExport 导出函数不存在
	ErrUnknownExport = errors.New("soft backend export not found")
	// ErrClosed 模块已关闭
	ErrClosed = errors.New("soft backend closed")
)

// 默认内存页数
const (
	DefaultInitialPages uint32 = 17
	DefaultMaxPages     uint32 = 256
)

type exportFunc func(ctx context.Context, m *Module, a *args) ([]uint64, error)

type export struct {
	arity int
	fn    exportFunc
}

// Module 软件后端模块，实现 crypto.Module
//
// 非并发安全，调用方需串行化。
type Module struct {
	mem     *Memory
	alloc   *allocator
	exports map[string]export
	closed  bool
}

var _ cryptoif.Module = (*Module)(nil)

// Option 模块选项
type Option func(*moduleOptions)

type moduleOptions struct {
	initialPages uint32
	maxPages     uint32
}

// WithMaxPages 线性内存上限页数
func WithMaxPages(pages uint32) Option {
	return func(o *moduleOptions) {
		if pages > 0 {
			o.maxPages = pages
		}
	}
}

// New 创建软件后端
func New(opts ...Option) *Module {
	o := &moduleOptions{initialPages: DefaultInitialPages, maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(o)
	}
	mem := newMemory(o.initialPages, o.maxPages)
	m := &Module{
		mem:   mem,
		alloc: newAllocator(mem),
	}
	m.exports = m.exportTable()
	return m
}

// Memory 返回线性内存
func (m *Module) Memory() cryptoif.Memory {
	return m.mem
}

// HasExport 判断导出是否存在
func (m *Module) HasExport(name string) bool {
	_, ok := m.exports[name]
	return ok
}

// Exports 导出名列表（排序）
func (m *Module) Exports() []string {
	names := make([]string, 0, len(m.exports))
	for name := range m.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call 调用导出函数
func (m *Module) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	if m.closed {
		return nil, ErrClosed
	}
	exp, ok := m.exports[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExport, name)
	}
	if len(params) != exp.arity {
		return nil, fmt.Errorf("%w: %s expects %d params, got %d", ErrTrap, name, exp.arity, len(params))
	}
	a := &args{m: m, params: params}
	results, err := exp.fn(ctx, m, a)
	if err == nil {
		err = a.err
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return results, nil
}

// Close 释放内存
func (m *Module) Close(context.Context) error {
	m.closed = true
	m.mem.buf = nil
	return nil
}

// returnBytes 分配结果缓冲区并把 (ptr, len) 写到 ret
func (m *Module) returnBytes(ret uint32, data []byte) ([]uint64, error) {
	ptr, err := m.alloc.malloc(uint32(len(data)))
	if err != nil {
		return nil, err
	}
	if !m.mem.Write(ptr, data) {
		return nil, ErrOutOfBounds
	}
	if !m.mem.WriteUint32Le(ret, ptr) || !m.mem.WriteUint32Le(ret+4, uint32(len(data))) {
		return nil, fmt.Errorf("%w: result pointer %d", ErrOutOfBounds, ret)
	}
	return nil, nil
}

func returnBool(v bool) ([]uint64, error) {
	if v {
		return []uint64{1}, nil
	}
	return []uint64{0}, nil
}

func trap(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrTrap, fmt.Sprintf(format, a...))
}

// args 顺序读取调用参数
type args struct {
	m      *Module
	params []uint64
	pos    int
	err    error
}

func (a *args) u32() uint32 {
	if a.pos >= len(a.params) {
		a.setErr(trap("missing parameter %d", a.pos))
		return 0
	}
	v := uint32(a.params[a.pos])
	a.pos++
	return v
}

// bytes 读取 (ptr, len) 并复制
func (a *args) bytes() []byte {
	ptr, n := a.u32(), a.u32()
	if a.err != nil {
		return nil
	}
	view, ok := a.m.mem.Read(ptr, n)
	if !ok {
		a.setErr(fmt.Errorf("%w: read %d bytes at %d", ErrOutOfBounds, n, ptr))
		return nil
	}
	out := make([]byte, n)
	copy(out, view)
	return out
}

func (a *args) str() string {
	return string(a.bytes())
}

func (a *args) setErr(err error) {
	if a.err == nil {
		a.err = err
	}
}
