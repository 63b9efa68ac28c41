package signature

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	bridgeconfig "github.com/weisyn/wasmcrypto/internal/config/bridge"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/bridge"
	"github.com/weisyn/wasmcrypto/internal/core/infrastructure/crypto/primitives"
	logInterface "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

// BatchItem 批量验签的单条输入
type BatchItem struct {
	Message            []byte
	Signature          []byte
	AddressOrPublicKey []byte
	IsExpanded         bool
}

// BatchResult 单条结果；输入错误只影响本条
type BatchResult struct {
	Result types.VerifyResult
	Err    error
}

// WorkerFactory 为单个 worker 构造独立的验证器，release 在 worker 结束时调用
type WorkerFactory func(ctx context.Context) (v *Verifier, release func(), err error)

// NewWorkerFactory 每个 worker 拥有独立的执行桥，共享同一份字节码
func NewWorkerFactory(wasmBytes []byte, options *bridgeconfig.BridgeOptions, logger logInterface.Logger, opts ...Option) WorkerFactory {
	return func(ctx context.Context) (*Verifier, func(), error) {
		b := bridge.New(bridge.WithOptions(options), bridge.WithLogger(logger))
		if !b.InitAndWait(ctx, wasmBytes, nil, nil) {
			_ = b.Close(context.Background())
			return nil, nil, fmt.Errorf("等待执行桥就绪失败: %w", ctx.Err())
		}
		v := New(primitives.New(b), append([]Option{WithLogger(logger)}, opts...)...)
		return v, func() { _ = b.Close(context.Background()) }, nil
	}
}

// VerifyBatch 并行验证一批签名，结果顺序与输入一致
//
// workers <= 0 时按 1 处理；worker 数不超过条目数。
func VerifyBatch(ctx context.Context, items []BatchItem, workers int, factory WorkerFactory) ([]BatchResult, error) {
	results := make([]BatchResult, len(items))
	if len(items) == 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range items {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			v, release, err := factory(gctx)
			if err != nil {
				return err
			}
			defer release()

			for i := range jobs {
				it := items[i]
				res, err := v.VerifyContext(gctx, it.Message, it.Signature, it.AddressOrPublicKey, it.IsExpanded)
				results[i] = BatchResult{Result: res, Err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
