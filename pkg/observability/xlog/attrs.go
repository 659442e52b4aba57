package xlog

import "log/slog"

// 常用字段名。
const (
	KeyError   = "error"
	KeyCommand = "command"
	KeyInput   = "input"
	KeyKind    = "kind"
	KeyCount   = "count"
)

// Err 返回 error 属性；err 为 nil 时返回空属性，slog 会忽略它。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Input 记录原始输入。
func Input(s string) slog.Attr { return slog.String(KeyInput, s) }

// Count 记录数量。
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
