// xhwaddrctl 是 xhwaddr 硬件地址库的命令行工具。
//
// 用法:
//
//	xhwaddrctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config     配置文件路径（.yaml/.yml/.json，环境变量 XHWADDRCTL_CONFIG）
//	-k, --kinds      候选类型，逗号分隔或重复指定（默认: OUI,CDI32,CDI40,EUI48,EUI60,EUI64）
//	-f, --format     输出使用的格式序号（0 为规范格式）
//	    --json       以 JSON Lines 输出
//	    --log-level  日志级别 debug/info/warn/error
//
// 命令:
//
//	parse <value>...         按候选类型解析，输出类型与规范格式（"-" 表示从标准输入逐行读取）
//	format <value>...        输出地址在所属类型全部格式下的表示
//	sort [file]...           读取地址列表（默认标准输入）并按全序排序
//	range <from> <to>        列出同类型地址区间
//	kinds                    列出内置类型与配置文件中的自定义类型
//	uuid <uuid>...           提取基于时间的 UUID 中的节点 MAC 地址
//
// 退出码:
//
//	0: 成功
//	1: 存在无法解析的输入或执行失败
//	2: 参数错误（缺少参数、未知类型、未知命令等）
//
// 示例:
//
//	xhwaddrctl parse 00:1a:2b:3c:4d:5e 0123.4567.89ab.cdef
//	xhwaddrctl -k EUI64 format 0123456789abcdef
//	ip -br link | awk '{print $3}' | xhwaddrctl sort -u
//	xhwaddrctl range 00-00-5E-00-53-00 00-00-5E-00-53-FF --limit 16
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// 版本信息，可通过 -ldflags "-X main.Version=..." 注入。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run 执行命令并把错误映射为退出码。
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	t := newTool(stdin, stdout, stderr)
	err := t.command().Run(ctx, args)
	if cerr := t.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	if isCLIUsageError(err) {
		// 框架已输出错误详情
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}
