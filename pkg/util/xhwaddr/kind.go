package xhwaddr

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
)

// Placeholder 是格式模式中代表一个十六进制位（nibble）的占位符。
// 模式中的其他字符都是需要逐字匹配的分隔符。
const Placeholder = 'x'

// Kind 描述一类定宽硬件地址：位宽与可接受的文本格式。
//
// Kind 创建后不可变，并发安全。类型身份由 *Kind 指针决定（名义类型）：
// 两个形状完全相同但分别创建的 Kind 互不相等，[KindMAC] 也不等于 [KindEUI48]。
type Kind struct {
	name    string
	size    int
	formats []string
	parent  *Kind
	rank    int
	// ouiPrefix 表示最高 24 位是组织唯一标识符。
	ouiPrefix bool
}

// 内置类型按声明顺序占用 rank 0..builtinKinds-1，
// 调用方创建的类型从 builtinKinds 开始依次递增。
const builtinKinds = 7

var customKinds atomic.Int64

func nextRank() int {
	return builtinKinds + int(customKinds.Add(1)-1)
}

// 内置类型。
var (
	// KindOUI 组织唯一标识符（Organizationally Unique Identifier）。
	KindOUI = newBuiltin(0, "OUI", 24, nil, false,
		"xx-xx-xx",
		"xx:xx:xx",
		"xxxxxx",
	)

	// KindCDI32 32 位上下文相关标识符（CDI-32）。
	KindCDI32 = newBuiltin(1, "CDI32", 32, nil, true,
		"xx-xx-xx-xx",
		"xx:xx:xx:xx",
		"xxxxxxxx",
	)

	// KindCDI40 40 位上下文相关标识符（CDI-40）。
	KindCDI40 = newBuiltin(2, "CDI40", 40, nil, true,
		"xx-xx-xx-xx-xx",
		"xx:xx:xx:xx:xx",
		"xxxxxxxxxx",
	)

	// KindEUI48 48 位扩展唯一标识符（EUI-48），即通常所说的 MAC 地址。
	KindEUI48 = newBuiltin(3, "EUI48", 48, nil, true,
		"xx-xx-xx-xx-xx-xx",
		"xx:xx:xx:xx:xx:xx",
		"xxxx.xxxx.xxxx",
		"xxxxxxxxxxxx",
	)

	// KindMAC 是 [KindEUI48] 的子类型。
	// 与 EUI48 共享位宽和格式，可相互转换，但比较时不相等，
	// 便于在代码中区分"网卡地址"与其他 EUI-48 用途。
	KindMAC = newBuiltin(4, "MAC", 48, KindEUI48, true)

	// KindEUI60 60 位扩展唯一标识符（EUI-60）。
	KindEUI60 = newBuiltin(5, "EUI60", 60, nil, true,
		"x.x.x.x.x.x.x.x.x.x.x.x.x.x.x",
		"xx-xx-xx.x.x.x.x.x.x.x.x.x",
		"xxxxxxxxxxxxxxx",
	)

	// KindEUI64 64 位扩展唯一标识符（EUI-64）。
	KindEUI64 = newBuiltin(6, "EUI64", 64, nil, true,
		"xx-xx-xx-xx-xx-xx-xx-xx",
		"xx:xx:xx:xx:xx:xx:xx:xx",
		"xxxx.xxxx.xxxx.xxxx",
		"xxxxxxxxxxxxxxxx",
	)
)

// Kinds 返回全部内置类型，按 rank 排序。
func Kinds() []*Kind {
	return []*Kind{KindOUI, KindCDI32, KindCDI40, KindEUI48, KindMAC, KindEUI60, KindEUI64}
}

// LookupKind 按名称（大小写不敏感）查找内置类型。
func LookupKind(name string) (*Kind, bool) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.name, name) {
			return k, true
		}
	}
	return nil, false
}

func newBuiltin(rank int, name string, size int, parent *Kind, ouiPrefix bool, formats ...string) *Kind {
	if parent != nil {
		formats = parent.formats
	}
	k := &Kind{
		name:      name,
		size:      size,
		formats:   formats,
		parent:    parent,
		rank:      rank,
		ouiPrefix: ouiPrefix,
	}
	if err := k.validate(); err != nil {
		panic(err)
	}
	return k
}

// NewKind 创建一个新的地址类型。
//
// size 为位宽（任意正整数）。formats 中每个模式的占位符 [Placeholder]
// 数量必须等于 ceil(size/4)；第一个模式用于规范输出。
// formats 可以为空，此时该类型不能解析或输出文本，只能通过整数和字节构造。
//
// 每次调用都会得到一个独立的类型，即使参数相同。
func NewKind(name string, size int, formats ...string) (*Kind, error) {
	k := &Kind{
		name:    name,
		size:    size,
		formats: slices.Clone(formats),
	}
	if err := k.validate(); err != nil {
		return nil, err
	}
	k.rank = nextRank()
	return k, nil
}

// NewSubKind 创建 parent 的子类型，共享位宽、格式和 OUI 前缀属性。
// 子类型的值可以与父类型的值相互转换（见 [Kind.FromAddr]），但不相等。
func NewSubKind(parent *Kind, name string) (*Kind, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: nil parent", ErrInvalidKind)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidKind)
	}
	k := &Kind{
		name:      name,
		size:      parent.size,
		formats:   parent.formats,
		parent:    parent,
		ouiPrefix: parent.ouiPrefix,
	}
	k.rank = nextRank()
	return k, nil
}

func (k *Kind) validate() error {
	if k.name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidKind)
	}
	if k.size <= 0 {
		return fmt.Errorf("%w: %s has non-positive size %d", ErrInvalidKind, k.name, k.size)
	}
	nibbles := k.NibbleLen()
	for _, f := range k.formats {
		if n := strings.Count(f, string(Placeholder)); n != nibbles {
			return fmt.Errorf("%w: %s format %q has %d placeholders, want %d",
				ErrInvalidKind, k.name, f, n, nibbles)
		}
		// 十六进制字符在输入中总被当作数字，作为分隔符永远无法匹配。
		if i := strings.IndexFunc(f, func(r rune) bool { return r < 0x80 && hexValue(byte(r)) >= 0 }); i >= 0 {
			return fmt.Errorf("%w: %s format %q uses hex digit %q as a separator",
				ErrInvalidKind, k.name, f, f[i])
		}
	}
	return nil
}

// Name 返回类型名。
func (k *Kind) Name() string { return k.name }

// String 返回类型名。
func (k *Kind) String() string {
	if k == nil {
		return "<nil>"
	}
	return k.name
}

// Size 返回位宽。
func (k *Kind) Size() int { return k.size }

// ByteLen 返回字节表示的长度：ceil(size/8)。
func (k *Kind) ByteLen() int { return (k.size + 7) >> 3 }

// NibbleLen 返回十六进制位数：ceil(size/4)。
func (k *Kind) NibbleLen() int { return (k.size + 3) >> 2 }

// Formats 返回格式模式的副本，第一个为规范格式。
func (k *Kind) Formats() []string { return slices.Clone(k.formats) }

// Parent 返回父类型，没有时返回 nil。
func (k *Kind) Parent() *Kind { return k.parent }

// Rank 返回类型的稳定序号，用于 [Compare] 的最后一级排序。
func (k *Kind) Rank() int { return k.rank }

// HasOUIPrefix 报告该类型的最高 24 位是否为 OUI。
func (k *Kind) HasOUIPrefix() bool { return k.ouiPrefix }

// IsA 报告 k 是否就是 other 或其后代类型。
func (k *Kind) IsA(other *Kind) bool {
	for c := k; c != nil; c = c.parent {
		if c == other {
			return true
		}
	}
	return false
}

// related 报告 k 与 other 是否在同一继承链上。
func (k *Kind) related(other *Kind) bool {
	return k.IsA(other) || other.IsA(k)
}

// padBits 返回字节对齐时末字节低位的填充位数。
func (k *Kind) padBits() uint {
	return uint(k.ByteLen()*8 - k.size)
}
