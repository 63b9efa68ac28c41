package soft

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// PageSize 线性内存页大小
const PageSize = 65536

var (
	// ErrOutOfMemory 超出内存上限
	ErrOutOfMemory = errors.New("soft backend out of memory")
	// ErrOutOfBounds 越界访问
	ErrOutOfBounds = errors.New("soft backend memory access out of bounds")
)

// Memory 纯 Go 线性内存，读写语义与 wazero api.Memory 一致
type Memory struct {
	buf      []byte
	maxPages uint32
}

func newMemory(initialPages, maxPages uint32) *Memory {
	if initialPages > maxPages {
		initialPages = maxPages
	}
	return &Memory{
		buf:      make([]byte, int(initialPages)*PageSize),
		maxPages: maxPages,
	}
}

// Size 当前字节大小
func (m *Memory) Size() uint32 { return uint32(len(m.buf)) }

// Pages 当前页数
func (m *Memory) Pages() uint32 { return uint32(len(m.buf) / PageSize) }

// Read 返回底层内存视图；越界时 ok=false
func (m *Memory) Read(offset, byteCount uint32) ([]byte, bool) {
	if !m.inBounds(offset, byteCount) {
		return nil, false
	}
	return m.buf[offset : offset+byteCount : offset+byteCount], true
}

// Write 写入数据；越界时返回 false
func (m *Memory) Write(offset uint32, v []byte) bool {
	if !m.inBounds(offset, uint32(len(v))) {
		return false
	}
	copy(m.buf[offset:], v)
	return true
}

// ReadUint32Le 读取小端 u32
func (m *Memory) ReadUint32Le(offset uint32) (uint32, bool) {
	b, ok := m.Read(offset, 4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// WriteUint32Le 写入小端 u32
func (m *Memory) WriteUint32Le(offset, v uint32) bool {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return m.Write(offset, b[:])
}

// Grow 增加 delta 页，返回增长前的页数
func (m *Memory) Grow(delta uint32) (uint32, error) {
	prev := m.Pages()
	if uint64(prev)+uint64(delta) > uint64(m.maxPages) {
		return prev, fmt.Errorf("%w: %d+%d pages exceeds limit %d", ErrOutOfMemory, prev, delta, m.maxPages)
	}
	grown := make([]byte, int(prev+delta)*PageSize)
	copy(grown, m.buf)
	m.buf = grown
	return prev, nil
}

func (m *Memory) inBounds(offset, byteCount uint32) bool {
	return uint64(offset)+uint64(byteCount) <= uint64(len(m.buf))
}
