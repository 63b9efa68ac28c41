package bridge

import (
	"context"
)

// With 在执行桥上执行一次串行化调用
//
// 就绪前返回 *NotReadyError（不排队）；就绪后持有实例锁，fn 返回后释放本次的临时分配。
// ctx 只在取锁前检查，进入后端后的调用不受取消影响。
func With[T any](ctx context.Context, b *Bridge, fn func(*Session) (T, error)) (T, error) {
	var zero T
	if !b.IsReady() {
		return zero, &NotReadyError{State: b.State()}
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return zero, ErrClosed
	}

	s := &Session{
		ctx:     context.WithoutCancel(ctx),
		module:  b.module,
		backend: b.Kind().String(),
		retPtr:  b.options.ResultPointer,
	}

	result, err := fn(s)
	if relErr := s.release(); relErr != nil {
		b.logger.Warnf("释放临时内存失败: %v", relErr)
		if err == nil {
			err = relErr
		}
	}
	if err != nil {
		return zero, err
	}
	return result, nil
}
