package xlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 日志文件轮转默认值。
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// ReplaceAttrFunc 同 slog.HandlerOptions.ReplaceAttr，返回空 Key 的属性会被移除。
type ReplaceAttrFunc func(groups []string, a slog.Attr) slog.Attr

// RotationConfig 日志文件轮转配置，零值字段使用默认值。
type RotationConfig struct {
	MaxSizeMB  int  `koanf:"max_size_mb"`
	MaxBackups int  `koanf:"max_backups"`
	MaxAgeDays int  `koanf:"max_age_days"`
	Compress   bool `koanf:"compress"`
}

// Builder 日志配置构建器，一次性使用。
type Builder struct {
	output      io.Writer
	levelVar    *slog.LevelVar
	format      string
	addSource   bool
	replaceAttr ReplaceAttrFunc
	onError     func(error)
	closer      io.Closer
	err         error
}

// New 创建构建器：stderr、Info 级别、text 格式。
func New() *Builder {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelInfo)
	return &Builder{
		output:   os.Stderr,
		levelVar: lv,
		format:   "text",
	}
}

// SetOutput 设置输出目标，nil 视为配置错误。
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if b.err != nil {
		return b
	}
	if w == nil {
		b.err = errors.New("xlog: nil output")
		return b
	}
	b.output = w
	return b
}

// SetLevel 设置初始级别。
func (b *Builder) SetLevel(level Level) *Builder {
	if b.err != nil {
		return b
	}
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetLevelString 通过字符串设置级别，见 [ParseLevel]。
func (b *Builder) SetLevelString(s string) *Builder {
	if b.err != nil {
		return b
	}
	level, err := ParseLevel(s)
	if err != nil {
		b.err = err
		return b
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json，空字符串使用 text。
func (b *Builder) SetFormat(format string) *Builder {
	if b.err != nil {
		return b
	}
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
		b.format = "text"
	case "text", "json":
		b.format = f
	default:
		b.err = fmt.Errorf("xlog: unknown format %q", format)
	}
	return b
}

// SetAddSource 是否记录调用位置。
func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// SetReplaceAttr 设置属性替换函数，用于字段重命名或过滤。
func (b *Builder) SetReplaceAttr(fn ReplaceAttrFunc) *Builder {
	b.replaceAttr = fn
	return b
}

// SetOnError 设置写入失败回调。回调同步执行，应保持轻量。
func (b *Builder) SetOnError(fn func(error)) *Builder {
	b.onError = fn
	return b
}

// SetRotation 将日志写入 filename，按 cfg 轮转。
// filename 必须非空，所在目录不存在时自动创建。
func (b *Builder) SetRotation(filename string, cfg RotationConfig) *Builder {
	if b.err != nil {
		return b
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		b.err = errors.New("xlog: empty log file name")
		return b
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o750); err != nil {
		b.err = fmt.Errorf("xlog: create log dir: %w", err)
		return b
	}
	lj := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    orDefault(cfg.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: orDefault(cfg.MaxBackups, DefaultMaxBackups),
		MaxAge:     orDefault(cfg.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   cfg.Compress,
	}
	b.output = lj
	b.closer = lj
	return b
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Build 构建 Logger。
//
// 返回的 cleanup 可重复调用，只在第一次关闭轮转文件。
func (b *Builder) Build() (LoggerWithLevel, func() error, error) {
	if b.err != nil {
		return nil, nil, b.err
	}
	opts := &slog.HandlerOptions{
		Level:     b.levelVar,
		AddSource: b.addSource,
	}
	if b.replaceAttr != nil {
		opts.ReplaceAttr = b.replaceAttr
	}

	var h slog.Handler
	if b.format == "json" {
		h = slog.NewJSONHandler(b.output, opts)
	} else {
		h = slog.NewTextHandler(b.output, opts)
	}

	l := &xlogger{
		handler:   h,
		levelVar:  b.levelVar,
		addSource: b.addSource,
		onError:   b.onError,
		inOnError: new(atomic.Bool),
	}

	closer := b.closer
	var once sync.Once
	cleanup := func() error {
		var err error
		once.Do(func() {
			if closer != nil {
				err = closer.Close()
			}
		})
		return err
	}
	return l, cleanup, nil
}
