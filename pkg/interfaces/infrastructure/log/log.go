// Package log 定义各组件共用的结构化日志接口
//
// 实现位于 internal/core/infrastructure/log（基于 zap）。
// 组件只依赖本接口，便于测试时注入 no-op 实现。
package log

import (
	"go.uber.org/zap"

	"github.com/weisyn/wasmcrypto/pkg/types"
)

// LogLevel 日志级别别名
type LogLevel = types.LogLevel

const (
	DebugLevel = types.DebugLevel
	InfoLevel  = types.InfoLevel
	WarnLevel  = types.WarnLevel
	ErrorLevel = types.ErrorLevel
	FatalLevel = types.FatalLevel
)

// Logger 日志记录器接口
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Fatal(msg string)
	Fatalf(format string, args ...interface{})

	// With 返回附带键值对字段的 Logger，参数按 key, value 成对给出
	With(args ...interface{}) Logger

	// Sync 刷新缓冲区
	Sync() error

	// GetZapLogger 获取底层 zap 记录器
	GetZapLogger() *zap.Logger
}
