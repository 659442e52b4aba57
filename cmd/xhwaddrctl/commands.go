package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xhwaddr/pkg/observability/xlog"
	"github.com/omeyang/xhwaddr/pkg/util/xhwaddr"
)

const (
	defaultRangeLimit = 256
	// maxConcurrentFiles sort 命令同时读取的文件数上限。
	maxConcurrentFiles = 8
)

// command 创建根命令。
func (t *tool) command() *cli.Command {
	return &cli.Command{
		Name:      "xhwaddrctl",
		Usage:     "硬件地址（OUI/CDI/EUI/MAC）解析、格式化与排序工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    t.out,
		ErrWriter: t.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
				Sources: cli.EnvVars("XHWADDRCTL_CONFIG"),
			},
			&cli.StringSliceFlag{
				Name:    "kinds",
				Aliases: []string{"k"},
				Usage:   "候选类型，按顺序优先",
			},
			&cli.IntFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "输出格式序号，0 为规范格式",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "以 JSON Lines 输出",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 debug/info/warn/error",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "日志写入文件（按大小轮转），默认写 stderr",
			},
		},
		Before: t.setup,
		Commands: []*cli.Command{
			t.parseCommand(),
			t.formatCommand(),
			t.sortCommand(),
			t.rangeCommand(),
			t.kindsCommand(),
			t.uuidCommand(),
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，退出码统一由 run() 映射。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(t.errOut, err)
			}
		},
	}
}

func (t *tool) parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "解析地址，输出类型与规范格式",
		ArgsUsage: "<value>... | -",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inputs, err := t.inputs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			return t.cmdParse(ctx, inputs)
		},
	}
}

// inputs 返回命令参数；唯一参数为 "-" 时从标准输入读取。
func (t *tool) inputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, newUsageError("至少需要一个地址参数")
	}
	if len(args) == 1 && args[0] == "-" {
		return readLines(t.in)
	}
	return args, nil
}

func (t *tool) cmdParse(ctx context.Context, inputs []string) error {
	failed := 0
	for _, s := range inputs {
		a, err := t.parse(ctx, s)
		if err != nil {
			failed++
			t.failf("%v", err)
			continue
		}
		if err := t.emit(t.view(s, a), a.Kind().Name()+"\t"+t.render(a)); err != nil {
			return err
		}
	}
	return t.result(ctx, len(inputs), failed)
}

// result 汇总批量处理结果，存在失败输入时返回退出码 1。
func (t *tool) result(ctx context.Context, total, failed int) error {
	if failed == 0 {
		return nil
	}
	t.log.Info(ctx, "some inputs rejected", xlog.Count(failed), slog.Int("total", total))
	return &exitError{code: 1}
}

func (t *tool) formatCommand() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "输出地址在所属类型全部格式下的表示",
		ArgsUsage: "<value>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inputs, err := t.inputs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			return t.cmdFormat(ctx, inputs)
		},
	}
}

// formatView 是 format 命令的 JSON 输出。
type formatView struct {
	Input   string   `json:"input"`
	Kind    string   `json:"kind"`
	Formats []string `json:"formats"`
}

func (t *tool) cmdFormat(ctx context.Context, inputs []string) error {
	failed := 0
	for _, s := range inputs {
		a, err := t.parse(ctx, s)
		if err != nil {
			failed++
			t.failf("%v", err)
			continue
		}
		patterns := a.Kind().Formats()
		v := formatView{Input: s, Kind: a.Kind().Name(), Formats: make([]string, len(patterns))}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s %s", v.Kind, s)
		for i, p := range patterns {
			v.Formats[i] = a.FormatString(i)
			fmt.Fprintf(&sb, "\n  %d  %-32s %s", i, p, v.Formats[i])
		}
		if err := t.emit(v, sb.String()); err != nil {
			return err
		}
	}
	return t.result(ctx, len(inputs), failed)
}

func (t *tool) sortCommand() *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "读取地址列表并排序（前缀紧邻其扩展地址）",
		ArgsUsage: "[file]...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "unique", Aliases: []string{"u"}, Usage: "去除重复地址"},
			&cli.BoolFlag{Name: "reverse", Aliases: []string{"r"}, Usage: "降序输出"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			lines, err := t.readSources(ctx, cmd.Args().Slice())
			if err != nil {
				return err
			}
			return t.cmdSort(ctx, lines, cmd.Bool("unique"), cmd.Bool("reverse"))
		},
	}
}

// readSources 并发读取文件，结果按参数顺序拼接；无参数时读标准输入。
func (t *tool) readSources(ctx context.Context, files []string) ([]string, error) {
	if len(files) == 0 {
		return readLines(t.in)
	}
	parts := make([][]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, err := readFile(name)
			if err != nil {
				return err
			}
			parts[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(parts...), nil
}

func readFile(name string) ([]string, error) {
	if name == "-" {
		return nil, newUsageError("sort 的文件参数不支持 \"-\"，不带参数即读取标准输入")
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return lines, nil
}

func (t *tool) cmdSort(ctx context.Context, lines []string, unique, reverse bool) error {
	addrs := make([]xhwaddr.Addr, 0, len(lines))
	failed := 0
	for _, s := range lines {
		a, err := t.parse(ctx, s)
		if err != nil {
			failed++
			t.failf("%v", err)
			continue
		}
		addrs = append(addrs, a)
	}

	xhwaddr.Sort(addrs)
	if unique {
		addrs = slices.Compact(addrs)
	}
	if reverse {
		slices.Reverse(addrs)
	}
	for _, a := range addrs {
		if err := t.emit(t.view("", a), a.Kind().Name()+"\t"+t.render(a)); err != nil {
			return err
		}
	}
	t.log.Debug(ctx, "sorted", xlog.Count(len(addrs)))
	return t.result(ctx, len(lines), failed)
}

func (t *tool) rangeCommand() *cli.Command {
	return &cli.Command{
		Name:      "range",
		Usage:     "列出 from 到 to（包含）之间的同类型地址",
		ArgsUsage: "<from> <to>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "最多输出的地址数，0 表示不限制",
				Value:   defaultRangeLimit,
			},
			&cli.BoolFlag{Name: "count", Usage: "只输出区间内地址数量"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 2 {
				return newUsageError("range 需要 <from> <to> 两个参数")
			}
			limit := int(cmd.Int("limit"))
			if limit < 0 {
				return newUsageError("--limit 不能为负数")
			}
			return t.cmdRange(ctx, args[0], args[1], limit, cmd.Bool("count"))
		},
	}
}

func (t *tool) cmdRange(ctx context.Context, fromText, toText string, limit int, countOnly bool) error {
	from, err := t.parse(ctx, fromText)
	if err != nil {
		return newUsageError(err.Error())
	}
	to, err := t.parse(ctx, toText)
	if err != nil {
		return newUsageError(err.Error())
	}
	if from.Kind() != to.Kind() {
		return newUsageError(fmt.Sprintf("range 两端类型不同: %s 与 %s", from.Kind(), to.Kind()))
	}
	if from.Compare(to) > 0 {
		return newUsageError(fmt.Sprintf("range 起点 %s 大于终点 %s", from, to))
	}

	total := xhwaddr.RangeCount(from, to)
	if countOnly {
		return t.emit(map[string]string{"kind": from.Kind().Name(), "count": total.String()}, total.String())
	}

	n := 0
	for a := range xhwaddr.Range(from, to) {
		if limit > 0 && n == limit {
			t.log.Warn(ctx, "range truncated", xlog.Count(limit), slog.String("total", total.String()))
			break
		}
		if err := t.emit(t.view("", a), t.render(a)); err != nil {
			return err
		}
		n++
	}
	return nil
}

func (t *tool) kindsCommand() *cli.Command {
	return &cli.Command{
		Name:  "kinds",
		Usage: "列出内置类型与自定义类型",
		Action: func(_ context.Context, _ *cli.Command) error {
			return t.cmdKinds()
		},
	}
}

// kindView 是 kinds 命令的 JSON 输出。
type kindView struct {
	Name      string   `json:"name"`
	Size      int      `json:"size"`
	Parent    string   `json:"parent,omitempty"`
	Candidate bool     `json:"candidate"`
	Formats   []string `json:"formats"`
}

func (t *tool) cmdKinds() error {
	all := append(xhwaddr.Kinds(), t.custom...)
	for _, k := range all {
		v := kindView{
			Name:      k.Name(),
			Size:      k.Size(),
			Candidate: slices.Contains(t.kinds, k),
			Formats:   k.Formats(),
		}
		if p := k.Parent(); p != nil {
			v.Parent = p.Name()
		}
		mark := " "
		if v.Candidate {
			mark = "*"
		}
		text := fmt.Sprintf("%s %-8s %3d  %s", mark, v.Name, v.Size, strings.Join(v.Formats, "  "))
		if err := t.emit(v, strings.TrimRight(text, " ")); err != nil {
			return err
		}
	}
	return nil
}

func (t *tool) uuidCommand() *cli.Command {
	return &cli.Command{
		Name:      "uuid",
		Usage:     "提取基于时间的 UUID（版本 1、2、6）中的节点 MAC 地址",
		ArgsUsage: "<uuid>... | -",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inputs, err := t.inputs(cmd.Args().Slice())
			if err != nil {
				return err
			}
			return t.cmdUUID(ctx, inputs)
		},
	}
}

func (t *tool) cmdUUID(ctx context.Context, inputs []string) error {
	failed := 0
	for _, s := range inputs {
		mac, err := nodeMAC(s)
		if err != nil {
			failed++
			t.log.Warn(ctx, "uuid rejected", xlog.Input(s), xlog.Err(err))
			t.failf("%s: %v", s, err)
			continue
		}
		a := mac.Addr()
		if err := t.emit(t.view(s, a), s+"\t"+t.render(a)); err != nil {
			return err
		}
	}
	return t.result(ctx, len(inputs), failed)
}

// nodeMAC 返回 UUID 的节点字段。只有基于时间的版本才保证节点字段是 MAC 地址。
func nodeMAC(s string) (xhwaddr.MAC, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return xhwaddr.MAC{}, err
	}
	switch u.Version() {
	case 1, 2, 6:
	default:
		return xhwaddr.MAC{}, fmt.Errorf("UUID 版本 %d 不含节点 MAC 地址", u.Version())
	}
	return xhwaddr.MACFromBytes(u.NodeID())
}
