package bridge

import (
	"context"
	"fmt"
	"time"

	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
)

type scratch struct {
	ptr, size uint32
}

// Session 一次串行化调用内的内存编组上下文
//
// 偏移以整数保存，调用过程中内存增长不会使其失效；
// 从不跨调用持有后端内存视图。
type Session struct {
	ctx     context.Context
	module  cryptoif.Module
	backend string
	retPtr  uint32
	scratch []scratch
}

// ResultPointer 结果区偏移
func (s *Session) ResultPointer() uint32 { return s.retPtr }

// AllocBytes 分配并写入字节，返回 (ptr, len)
func (s *Session) AllocBytes(buf []byte) (uint32, uint32, error) {
	size := uint32(len(buf))
	res, err := s.Call(cryptoif.ExportMalloc, uint64(size))
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 1 {
		return 0, 0, fmt.Errorf("%s returned %d values", cryptoif.ExportMalloc, len(res))
	}
	ptr := uint32(res[0])
	s.scratch = append(s.scratch, scratch{ptr: ptr, size: size})

	if size > 0 && !s.module.Memory().Write(ptr, buf) {
		return 0, 0, fmt.Errorf("%w: write %d bytes at %d", ErrMemoryAccess, size, ptr)
	}
	return ptr, size, nil
}

// AllocString 以 UTF-8 字节分配字符串
func (s *Session) AllocString(str string) (uint32, uint32, error) {
	return s.AllocBytes([]byte(str))
}

// ReadResultBytes 读取结果区指向的缓冲区，复制后释放
func (s *Session) ReadResultBytes() ([]byte, error) {
	mem := s.module.Memory()
	if mem == nil {
		return nil, fmt.Errorf("%w: backend has no memory", ErrMemoryAccess)
	}
	ptr, ok1 := mem.ReadUint32Le(s.retPtr)
	size, ok2 := mem.ReadUint32Le(s.retPtr + 4)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: result area at %d", ErrMemoryAccess, s.retPtr)
	}
	view, ok := mem.Read(ptr, size)
	if !ok {
		return nil, fmt.Errorf("%w: result (%d, %d) exceeds memory size %d", ErrMemoryAccess, ptr, size, mem.Size())
	}
	out := make([]byte, size)
	copy(out, view)

	if _, err := s.Call(cryptoif.ExportFree, uint64(ptr), uint64(size)); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadResultString 读取结果并按 UTF-8 解码
func (s *Session) ReadResultString() (string, error) {
	b, err := s.ReadResultBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Call 调用导出函数
func (s *Session) Call(export string, params ...uint64) ([]uint64, error) {
	start := time.Now()
	res, err := s.module.Call(s.ctx, export, params...)
	recordCall(export, s.backend, err, time.Since(start).Seconds())
	if err != nil {
		if !s.module.HasExport(export) {
			return nil, &MissingExportError{Export: export}
		}
		return nil, err
	}
	return res, nil
}

// release 逆序释放本次调用的临时分配
func (s *Session) release() error {
	var firstErr error
	for i := len(s.scratch) - 1; i >= 0; i-- {
		sc := s.scratch[i]
		if _, err := s.module.Call(s.ctx, cryptoif.ExportFree, uint64(sc.ptr), uint64(sc.size)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.scratch = s.scratch[:0]
	return firstErr
}
