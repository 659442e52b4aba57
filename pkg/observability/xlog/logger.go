package xlog

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

var _ LoggerWithLevel = (*xlogger)(nil)

type xlogger struct {
	handler   slog.Handler
	levelVar  *slog.LevelVar
	addSource bool
	onError   func(error)
	// 派生 logger 共享，防止 onError 内部再次写日志导致递归
	inOnError *atomic.Bool
}

// Discard 返回丢弃所有输出的 Logger，用于测试或未配置日志的场景。
func Discard() LoggerWithLevel {
	// 默认配置不会出错
	l, _, _ := New().SetOutput(io.Discard).Build()
	return l
}

// log 的调用链固定为 业务代码 → Debug/Info/... → log，
// runtime.Callers 跳过 Callers、log 和级别方法三帧。
//
//go:noinline
func (l *xlogger) log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.handler.Enabled(ctx, level) {
		return
	}
	var pc uintptr
	if l.addSource {
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		pc = pcs[0]
	}
	r := slog.NewRecord(time.Now(), level, msg, pc)
	r.AddAttrs(attrs...)
	if err := l.handler.Handle(ctx, r); err != nil {
		l.reportError(err)
	}
}

// reportError 把写入失败交给 onError。
//
// 设计决策: 日志失败不向业务返回错误，回调 panic 也在此吞掉。
func (l *xlogger) reportError(err error) {
	if l.onError == nil || !l.inOnError.CompareAndSwap(false, true) {
		return
	}
	defer l.inOnError.Store(false)
	defer func() { _ = recover() }()
	l.onError(err)
}

func (l *xlogger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelDebug, msg, attrs)
}

func (l *xlogger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelInfo, msg, attrs)
}

func (l *xlogger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelWarn, msg, attrs)
}

func (l *xlogger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelError, msg, attrs)
}

func (l *xlogger) derive(h slog.Handler) *xlogger {
	c := *l
	c.handler = h
	return &c
}

func (l *xlogger) With(attrs ...slog.Attr) Logger {
	if len(attrs) == 0 {
		return l
	}
	return l.derive(l.handler.WithAttrs(attrs))
}

func (l *xlogger) WithGroup(name string) Logger {
	if name == "" {
		return l
	}
	return l.derive(l.handler.WithGroup(name))
}

func (l *xlogger) SetLevel(level Level) { l.levelVar.Set(slog.Level(level)) }

func (l *xlogger) GetLevel() Level { return Level(l.levelVar.Level()) }

func (l *xlogger) Enabled(ctx context.Context, level Level) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.handler.Enabled(ctx, slog.Level(level))
}
