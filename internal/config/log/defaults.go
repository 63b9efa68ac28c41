package log

import (
	"go.uber.org/zap/zapcore"
)

// 日志配置默认值
const (
	// defaultLogLevel 默认 info，验签库在调用方进程内运行，debug 只在排查时打开
	defaultLogLevel = "info"

	// defaultToConsole CLI 场景下直接看到 stderr 输出
	defaultToConsole = true

	// defaultFilePath 默认不写文件
	defaultFilePath = ""

	defaultMaxSize    = 50
	defaultMaxBackups = 5
	defaultMaxAge     = 14
	defaultCompress   = true

	defaultEnableCaller     = false
	defaultEnableStacktrace = true
)

// 默认的日志级别映射
var defaultLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"panic": zapcore.PanicLevel,
	"fatal": zapcore.FatalLevel,
}
