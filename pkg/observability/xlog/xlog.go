package xlog

import (
	"context"
	"log/slog"
)

// Logger 日志接口。
//
// 方法签名强制传入 context，只接受 slog.Attr，避免隐式 key-value 转换。
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 返回带固定属性的派生 Logger，与父级共享级别。
	With(attrs ...slog.Attr) Logger

	// WithGroup 返回带分组的派生 Logger，name 为空时返回自身。
	WithGroup(name string) Logger
}

// Leveler 运行时级别控制。
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel 是 [Builder.Build] 的返回类型。
type LoggerWithLevel interface {
	Logger
	Leveler
}
