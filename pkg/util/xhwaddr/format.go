package xhwaddr

import (
	"fmt"
	"strings"
)

const hexUpper = "0123456789ABCDEF"

// String 返回规范格式（类型的第一个格式模式）的字符串，十六进制大写。
//
// 类型未声明格式时返回零填充的十六进制字面量（如 0x0ABC），
// 零值返回空字符串。
func (a Addr) String() string {
	if a.kind == nil {
		return ""
	}
	if len(a.kind.formats) == 0 {
		return a.hexLiteral()
	}
	return a.render(a.kind.formats[0])
}

// Text 返回规范格式的字符串。
// 类型未声明任何格式时返回 [ErrWrongType]。
func (a Addr) Text() (string, error) {
	if a.kind == nil {
		return "", errNoKind
	}
	if len(a.kind.formats) == 0 {
		return "", fmt.Errorf("%w: %s declares no text formats", ErrWrongType, a.kind.name)
	}
	return a.render(a.kind.formats[0]), nil
}

// FormatString 按类型的第 i 个格式模式输出。
// i 越界或地址无效时返回空字符串。
func (a Addr) FormatString(i int) string {
	if a.kind == nil || i < 0 || i >= len(a.kind.formats) {
		return ""
	}
	return a.render(a.kind.formats[i])
}

// RenderPattern 按调用方给出的模式输出，模式中的占位符数量必须等于 NibbleLen()。
// 适用于类型未声明的临时格式，例如小写或不同分隔符的展示需求。
func (a Addr) RenderPattern(pattern string) (string, error) {
	if a.kind == nil {
		return "", errNoKind
	}
	if n := strings.Count(pattern, string(Placeholder)); n != a.kind.NibbleLen() {
		return "", fmt.Errorf("%w: pattern %q has %d placeholders, %s needs %d",
			ErrInvalidValue, pattern, n, a.kind.name, a.kind.NibbleLen())
	}
	return a.render(pattern), nil
}

// GoString 返回带类型名的调试表示，如 EUI48("AA-BB-CC-DD-EE-FF")；
// 类型未声明格式时为 Name(0x0ABC)。实现 [fmt.GoStringer]。
func (a Addr) GoString() string {
	if a.kind == nil {
		return "xhwaddr.Addr{}"
	}
	if len(a.kind.formats) == 0 {
		return a.kind.name + "(" + a.hexLiteral() + ")"
	}
	return a.kind.name + "(\"" + a.render(a.kind.formats[0]) + "\")"
}

// render 按模式逐字符输出：占位符依次消费一个 nibble（从最高位开始），
// 其他字符原样输出。raw 最高位对齐，第 j 个 nibble 就在 raw[j/2] 的高或低半字节。
func (a Addr) render(pattern string) string {
	buf := make([]byte, len(pattern))
	j := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == Placeholder {
			c = hexUpper[a.nibble(j)]
			j++
		}
		buf[i] = c
	}
	return string(buf)
}

func (a Addr) nibble(j int) byte {
	b := a.raw[j>>1]
	if j&1 == 0 {
		return b >> 4
	}
	return b & 0x0f
}

// hexLiteral 返回 0x 前缀、按 NibbleLen() 零填充的大写十六进制数值。
func (a Addr) hexLiteral() string {
	digits := strings.ToUpper(a.Big().Text(16))
	if pad := a.kind.NibbleLen() - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	return "0x" + digits
}
