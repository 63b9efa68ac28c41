package bridge

import (
	"errors"
	"fmt"

	"github.com/weisyn/wasmcrypto/pkg/types"
)

var (
	// ErrNotReady 后端尚未就绪
	ErrNotReady = errors.New("crypto bridge not ready")
	// ErrMemoryAccess 线性内存越界访问
	ErrMemoryAccess = errors.New("crypto bridge memory access out of range")
	// ErrExportNotFound 后端缺少必需的导出
	ErrExportNotFound = errors.New("crypto bridge export not found")
	// ErrEmptyModule 未提供加速后端字节码
	ErrEmptyModule = errors.New("empty wasm module")
	// ErrClosed 执行桥已关闭
	ErrClosed = errors.New("crypto bridge closed")
)

// NotReadyError 在就绪前调用时返回
type NotReadyError struct {
	State types.BackendState
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s (state=%s)", ErrNotReady.Error(), e.State)
}

func (e *NotReadyError) Unwrap() error { return ErrNotReady }

// MissingExportError 缺少导出
type MissingExportError struct {
	Export string
}

func (e *MissingExportError) Error() string {
	return fmt.Sprintf("%s: %s", ErrExportNotFound.Error(), e.Export)
}

func (e *MissingExportError) Unwrap() error { return ErrExportNotFound }
