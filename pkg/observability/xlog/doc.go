// Package xlog 基于 log/slog 的结构化日志封装，供 xhwaddrctl 等命令行工具使用。
//
// # 创建 Logger
//
// 使用 Builder 模式，遇到第一个配置错误后后续 Set 调用被忽略，错误在 Build 时返回：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString(cfg.Log.Level).
//		SetFormat(cfg.Log.Format).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// 设置 [Builder.SetRotation] 后日志写入文件并按大小轮转（lumberjack），
// cleanup 负责关闭文件。
//
// # 接口
//
// [Logger] 的所有方法第一个参数都是 context.Context，属性只接受 slog.Attr。
// [Leveler] 提供运行时级别调整，[Builder.Build] 返回两者的组合 [LoggerWithLevel]。
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)，与 slog 一致。
// [Level] 实现 encoding.TextUnmarshaler，可直接从配置文件解析。
package xlog
