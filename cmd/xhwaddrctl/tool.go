package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xhwaddr/pkg/config/xconf"
	"github.com/omeyang/xhwaddr/pkg/observability/xlog"
	"github.com/omeyang/xhwaddr/pkg/util/xhwaddr"
)

// defaultKinds 默认候选类型。MAC 与 EUI48 格式相同，放在候选列表中永远不会被选中，因此不列入。
var defaultKinds = []string{"OUI", "CDI32", "CDI40", "EUI48", "EUI60", "EUI64"}

// settings 对应配置文件结构。
type settings struct {
	Kinds       []string   `koanf:"kinds"`
	CustomKinds []kindSpec `koanf:"custom_kinds"`
	Log         struct {
		Level    string              `koanf:"level"`
		Format   string              `koanf:"format"`
		File     string              `koanf:"file"`
		Rotation xlog.RotationConfig `koanf:"rotation"`
	} `koanf:"log"`
	Output struct {
		Format int  `koanf:"format"`
		JSON   bool `koanf:"json"`
	} `koanf:"output"`
}

// kindSpec 配置文件中的自定义类型。
type kindSpec struct {
	Name    string   `koanf:"name"`
	Size    int      `koanf:"size"`
	Formats []string `koanf:"formats"`
}

// tool 保存一次命令执行的全部状态。
type tool struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg     settings
	custom  []*xhwaddr.Kind
	kinds   []*xhwaddr.Kind
	log     xlog.Logger
	cleanup func() error
}

func newTool(in io.Reader, out, errOut io.Writer) *tool {
	return &tool{
		in:     in,
		out:    out,
		errOut: errOut,
		log:    xlog.Discard(),
	}
}

// setup 加载配置、应用命令行覆盖并构建 logger。
// 优先级：命令行参数 > 配置文件 > 默认值。
func (t *tool) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg := xconf.Empty()
	if path := cmd.String("config"); path != "" {
		loaded, err := xconf.New(path)
		if err != nil {
			return ctx, err
		}
		cfg = loaded
	}

	overrides := []struct {
		flag, key string
		value     func() any
	}{
		{"kinds", "kinds", func() any { return splitList(cmd.StringSlice("kinds")) }},
		{"log-level", "log.level", func() any { return cmd.String("log-level") }},
		{"log-file", "log.file", func() any { return cmd.String("log-file") }},
		{"format", "output.format", func() any { return int(cmd.Int("format")) }},
		{"json", "output.json", func() any { return cmd.Bool("json") }},
	}
	for _, o := range overrides {
		if !cmd.IsSet(o.flag) {
			continue
		}
		if err := cfg.Set(o.key, o.value()); err != nil {
			return ctx, err
		}
	}

	if err := cfg.Unmarshal("", &t.cfg); err != nil {
		return ctx, err
	}
	if len(t.cfg.Kinds) == 0 {
		t.cfg.Kinds = defaultKinds
	}

	b := xlog.New().
		SetOutput(t.errOut).
		SetLevelString(t.cfg.Log.Level).
		SetFormat(t.cfg.Log.Format)
	if t.cfg.Log.File != "" {
		b = b.SetRotation(t.cfg.Log.File, t.cfg.Log.Rotation)
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return ctx, newUsageError(err.Error())
	}
	t.log = logger.With(slog.String(xlog.KeyCommand, commandName(cmd)))
	t.cleanup = cleanup

	if err := t.loadKinds(); err != nil {
		return ctx, err
	}
	t.log.Debug(ctx, "configuration loaded",
		slog.String("config", cfg.Path()),
		slog.Any("kinds", t.cfg.Kinds),
		xlog.Count(len(t.custom)))
	return ctx, nil
}

func (t *tool) close() error {
	if t.cleanup == nil {
		return nil
	}
	return t.cleanup()
}

// commandName 返回将要执行的子命令名，用作日志字段。
func commandName(cmd *cli.Command) string {
	if name := cmd.Args().First(); name != "" {
		return name
	}
	return cmd.Name
}

// loadKinds 创建自定义类型并解析候选类型列表。
func (t *tool) loadKinds() error {
	t.custom = t.custom[:0]
	for _, s := range t.cfg.CustomKinds {
		if _, ok := xhwaddr.LookupKind(s.Name); ok {
			return newUsageError(fmt.Sprintf("自定义类型 %q 与内置类型重名", s.Name))
		}
		k, err := xhwaddr.NewKind(s.Name, s.Size, s.Formats...)
		if err != nil {
			return newUsageError(fmt.Sprintf("自定义类型 %q 无效: %v", s.Name, err))
		}
		t.custom = append(t.custom, k)
	}

	t.kinds = t.kinds[:0]
	for _, name := range t.cfg.Kinds {
		k, ok := t.lookupKind(name)
		if !ok {
			return newUsageError(fmt.Sprintf("未知类型 %q", name))
		}
		t.kinds = append(t.kinds, k)
	}
	return nil
}

func (t *tool) lookupKind(name string) (*xhwaddr.Kind, bool) {
	for _, k := range t.custom {
		if strings.EqualFold(k.Name(), name) {
			return k, true
		}
	}
	return xhwaddr.LookupKind(name)
}

// splitList 支持 "-k EUI48,EUI64" 与 "-k EUI48 -k EUI64" 两种写法。
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// parse 按候选类型解析一个输入，失败时记录日志。
func (t *tool) parse(ctx context.Context, s string) (xhwaddr.Addr, error) {
	a, err := xhwaddr.ParseString(s, t.kinds...)
	if err != nil {
		t.log.Warn(ctx, "parse failed", xlog.Input(s), xlog.Err(err))
		return a, err
	}
	t.log.Debug(ctx, "parsed", xlog.Input(s), slog.String(xlog.KeyKind, a.Kind().Name()))
	return a, nil
}

// render 按 output.format 输出地址，序号越界时退回规范格式。
func (t *tool) render(a xhwaddr.Addr) string {
	if s := a.FormatString(t.cfg.Output.Format); s != "" {
		return s
	}
	return a.String()
}

// addrView 是 --json 模式下单个地址的输出结构。
type addrView struct {
	Input     string `json:"input,omitempty"`
	Kind      string `json:"kind"`
	Addr      string `json:"addr"`
	Size      int    `json:"size"`
	OUI       string `json:"oui,omitempty"`
	Multicast bool   `json:"multicast,omitempty"`
	Local     bool   `json:"local,omitempty"`
}

func (t *tool) view(input string, a xhwaddr.Addr) addrView {
	v := addrView{
		Input:     input,
		Kind:      a.Kind().Name(),
		Addr:      t.render(a),
		Size:      a.Size(),
		Multicast: a.IsMulticast(),
		Local:     a.IsLocallyAdministered(),
	}
	if oui, ok := a.OUI(); ok {
		v.OUI = oui.String()
	}
	return v
}

// emit 输出一条记录：JSON 模式下编码 v，否则输出 text。
func (t *tool) emit(v any, text string) error {
	if t.cfg.Output.JSON {
		return json.NewEncoder(t.out).Encode(v)
	}
	_, err := fmt.Fprintln(t.out, text)
	return err
}

// failf 向 stderr 报告单个输入的错误。
func (t *tool) failf(format string, args ...any) {
	fmt.Fprintf(t.errOut, format+"\n", args...)
}

// readLines 读取非空行，去除首尾空白，忽略 # 开头的注释行。
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
