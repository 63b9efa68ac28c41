// Package storage 定义键值存储接口
package storage

import "context"

// Store 事务型键值存储
//
// Get 在键不存在时返回 nil 值与 nil 错误。
type Store interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Set(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
	Exists(ctx context.Context, key []byte) (bool, error)

	// PrefixScan 返回前缀下的全部键值
	PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error)

	// RunInTransaction 在单个事务中执行 fn：fn 返回 nil 时原子提交，否则全部丢弃。
	// 事务内的读取能看到本事务之前的写入。
	RunInTransaction(ctx context.Context, fn func(tx Transaction) error) error

	Close() error
}

// Transaction 事务内操作
type Transaction interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Exists(key []byte) (bool, error)
}
