package bridge

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/wasmcrypto/internal/core/engines/soft"
	wasmtest "github.com/weisyn/wasmcrypto/internal/core/engines/wasm/testutil"
	cryptoif "github.com/weisyn/wasmcrypto/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/wasmcrypto/pkg/types"
)

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newReady(t *testing.T, wasm []byte) *Bridge {
	t.Helper()
	b := New()
	require.True(t, b.InitAndWait(waitCtx(t), wasm, nil, nil))
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	return b
}

func TestBridge_NotReadyBeforeInit(t *testing.T) {
	b := New()
	assert.False(t, b.IsReady())
	assert.Equal(t, types.BackendUnloaded, b.State())
	assert.Equal(t, types.BackendNone, b.Kind())

	_, err := With(context.Background(), b, func(s *Session) (int, error) { return 1, nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReady)
	var nre *NotReadyError
	require.ErrorAs(t, err, &nre)
	assert.Equal(t, types.BackendUnloaded, nre.State)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.False(t, b.WaitReady(ctx))
}

func TestBridge_FallbackOnBadModules(t *testing.T) {
	cases := []struct {
		name string
		wasm []byte
	}{
		{"空字节码", nil},
		{"魔数错误", wasmtest.GarbageModule()},
		{"缺少导出", wasmtest.EmptyModule()},
		{"缺少导入", wasmtest.MissingImportModule()},
		{"实例化陷入", wasmtest.TrapModule()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := testutil.ToFloat64(backendLoadsTotal.WithLabelValues("fallback"))

			b := newReady(t, tc.wasm)
			assert.True(t, b.IsReady())
			assert.Equal(t, types.BackendFallbackReady, b.State())
			assert.Equal(t, types.BackendFallback, b.Kind())
			assert.Error(t, b.LoadError())

			after := testutil.ToFloat64(backendLoadsTotal.WithLabelValues("fallback"))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestBridge_MissingExportReported(t *testing.T) {
	b := newReady(t, wasmtest.EmptyModule())
	assert.ErrorIs(t, b.LoadError(), ErrExportNotFound)
}

func TestBridge_AcceleratedEcho(t *testing.T) {
	b := newReady(t, wasmtest.EchoModule())
	require.Equal(t, types.BackendReady, b.State())
	require.Equal(t, types.BackendAccelerated, b.Kind())
	assert.NoError(t, b.LoadError())

	got, err := With(context.Background(), b, func(s *Session) (string, error) {
		ptr, n, err := s.AllocString("hello")
		if err != nil {
			return "", err
		}
		if _, err := s.Call("ext_echo", uint64(s.ResultPointer()), uint64(ptr), uint64(n)); err != nil {
			return "", err
		}
		return s.ReadResultString()
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	_, err = With(context.Background(), b, func(s *Session) ([]uint64, error) {
		return s.Call("ext_missing")
	})
	assert.ErrorIs(t, err, ErrExportNotFound)
}

func echo(ctx context.Context, b *Bridge, msg string) (string, error) {
	return With(ctx, b, func(s *Session) (string, error) {
		ptr, n, err := s.AllocString(msg)
		if err != nil {
			return "", err
		}
		if _, err := s.Call("ext_echo", uint64(s.ResultPointer()), uint64(ptr), uint64(n)); err != nil {
			return "", err
		}
		return s.ReadResultString()
	})
}

func TestBridge_CancelledContextKeepsBackend(t *testing.T) {
	b := newReady(t, wasmtest.EchoModule())

	got, err := echo(context.Background(), b, "first")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = echo(cancelled, b, "cancelled")
	assert.ErrorIs(t, err, context.Canceled)

	// 上下文在调用期间被取消，调用仍完成
	midCtx, midCancel := context.WithCancel(context.Background())
	got, err = With(midCtx, b, func(s *Session) (string, error) {
		midCancel()
		ptr, n, err := s.AllocString("mid")
		if err != nil {
			return "", err
		}
		if _, err := s.Call("ext_echo", uint64(s.ResultPointer()), uint64(ptr), uint64(n)); err != nil {
			return "", err
		}
		return s.ReadResultString()
	})
	require.NoError(t, err)
	assert.Equal(t, "mid", got)

	got, err = echo(context.Background(), b, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", got)
	assert.Equal(t, types.BackendReady, b.State())
}

func TestBridge_ResultOutOfRange(t *testing.T) {
	b := newReady(t, wasmtest.EchoModule())

	_, err := With(context.Background(), b, func(s *Session) ([]byte, error) {
		// ptr 指向内存末尾之后
		if _, err := s.Call("ext_echo", uint64(s.ResultPointer()), 1<<20, 4); err != nil {
			return nil, err
		}
		return s.ReadResultBytes()
	})
	assert.ErrorIs(t, err, ErrMemoryAccess)
}

func TestBridge_FallbackPrimitiveCall(t *testing.T) {
	b := newReady(t, nil)

	before := testutil.ToFloat64(backendCallsTotal.WithLabelValues(cryptoif.ExportSha512, "fallback", "ok"))
	out, err := With(context.Background(), b, func(s *Session) ([]byte, error) {
		ptr, n, err := s.AllocBytes([]byte("abc"))
		if err != nil {
			return nil, err
		}
		if _, err := s.Call(cryptoif.ExportSha512, uint64(s.ResultPointer()), uint64(ptr), uint64(n)); err != nil {
			return nil, err
		}
		return s.ReadResultBytes()
	})
	require.NoError(t, err)
	assert.Len(t, out, 64)
	after := testutil.ToFloat64(backendCallsTotal.WithLabelValues(cryptoif.ExportSha512, "fallback", "ok"))
	assert.Equal(t, before+1, after)
}

func TestBridge_InitIsMemoized(t *testing.T) {
	b := New()
	ctx := waitCtx(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// 只有第一次 Init 的参数生效
			if i%2 == 0 {
				b.Init(ctx, wasmtest.EchoModule(), nil, nil)
			} else {
				b.Init(ctx, nil, nil, nil)
			}
		}(i)
	}
	wg.Wait()
	require.True(t, b.WaitReady(ctx))
	kind := b.Kind()

	b.Init(ctx, wasmtest.GarbageModule(), nil, nil)
	assert.Equal(t, kind, b.Kind())
	assert.True(t, b.WaitReady(ctx))
	require.NoError(t, b.Close(ctx))
}

func TestBridge_Close(t *testing.T) {
	b := New()
	require.True(t, b.InitAndWait(waitCtx(t), nil, nil, nil))
	require.NoError(t, b.Close(context.Background()))
	require.NoError(t, b.Close(context.Background()))

	_, err := With(context.Background(), b, func(s *Session) (int, error) { return 0, nil })
	assert.ErrorIs(t, err, ErrClosed)
}

type trackedModule struct {
	cryptoif.Module
	closed atomic.Bool
}

func (m *trackedModule) Close(ctx context.Context) error {
	m.closed.Store(true)
	return m.Module.Close(ctx)
}

func TestBridge_CloseDuringLoad(t *testing.T) {
	release := make(chan struct{})
	mod := &trackedModule{Module: soft.New()}
	fallback := func() cryptoif.Module {
		<-release
		return mod
	}

	b := New()
	b.Init(context.Background(), nil, fallback, nil)
	require.NoError(t, b.Close(context.Background()))
	assert.False(t, mod.closed.Load())

	close(release)
	require.True(t, b.WaitReady(waitCtx(t)))
	assert.True(t, mod.closed.Load())

	_, err := With(context.Background(), b, func(s *Session) (int, error) { return 0, nil })
	assert.ErrorIs(t, err, ErrClosed)
	require.NoError(t, b.Close(context.Background()))
}

func TestReadWasm(t *testing.T) {
	data, err := ReadWasm("")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = ReadWasm("/nonexistent/crypto.wasm")
	assert.Error(t, err)
}
