package xhwaddr

import (
	"cmp"
	"fmt"
	"net"
)

// tag 在编译期把类型化地址绑定到它的 [Kind]。
type tag interface {
	kind() *Kind
}

type (
	ouiTag   struct{}
	cdi32Tag struct{}
	cdi40Tag struct{}
	eui48Tag struct{}
	macTag   struct{}
	eui60Tag struct{}
	eui64Tag struct{}
)

func (ouiTag) kind() *Kind   { return KindOUI }
func (cdi32Tag) kind() *Kind { return KindCDI32 }
func (cdi40Tag) kind() *Kind { return KindCDI40 }
func (eui48Tag) kind() *Kind { return KindEUI48 }
func (macTag) kind() *Kind   { return KindMAC }
func (eui60Tag) kind() *Kind { return KindEUI60 }
func (eui64Tag) kind() *Kind { return KindEUI64 }

// base 是内置类型化地址的公共实现。
//
// 内置类型都不超过 64 位，直接以 uint64 保存：零值就是该类型的全零地址，
// == 与数值相等一致。
type base[T tag] struct {
	v uint64
}

func kindOf[T tag]() *Kind {
	var t T
	return t.kind()
}

// Kind 返回地址类型。
func (b base[T]) Kind() *Kind { return kindOf[T]() }

// Addr 返回通用地址表示。
func (b base[T]) Addr() Addr {
	k := kindOf[T]()
	return Addr{kind: k, raw: k.encodeUint64(b.v)}
}

// Uint64 返回整数值。
func (b base[T]) Uint64() uint64 { return b.v }

// Bytes 返回大端字节表示。
func (b base[T]) Bytes() []byte { return b.Addr().Bytes() }

// String 返回规范格式字符串（十六进制大写）。
func (b base[T]) String() string { return b.Addr().String() }

// GoString 返回带类型名的调试表示。
func (b base[T]) GoString() string { return b.Addr().GoString() }

// FormatString 按第 i 个格式模式输出，i 越界时返回空字符串。
func (b base[T]) FormatString(i int) string { return b.Addr().FormatString(i) }

// IsZero 报告是否为全零地址。
func (b base[T]) IsZero() bool { return b.v == 0 }

func parseAs[T tag](s string) (uint64, error) {
	a, err := kindOf[T]().ParseString(s)
	if err != nil {
		return 0, err
	}
	n, _ := a.Uint64()
	return n, nil
}

func fromUint64As[T tag](n uint64) (uint64, error) {
	if _, err := kindOf[T]().FromUint64(n); err != nil {
		return 0, err
	}
	return n, nil
}

func fromBytesAs[T tag](b []byte) (uint64, error) {
	a, err := kindOf[T]().FromBytes(b)
	if err != nil {
		return 0, err
	}
	n, _ := a.Uint64()
	return n, nil
}

func mustAs[T tag](n uint64, err error, s string) uint64 {
	if err != nil {
		panic(fmt.Sprintf("xhwaddr: MustParse%s(%q): %v", kindOf[T]().name, s, err))
	}
	return n
}

// prefixOUI 取 size 位数值的最高 24 位。
func prefixOUI[T tag](v uint64) OUI {
	return newOUI(v >> uint(kindOf[T]().size-KindOUI.size))
}

// =============================================================================
// OUI
// =============================================================================

// OUI 组织唯一标识符（24 位）。
type OUI struct{ base[ouiTag] }

func newOUI(v uint64) OUI { return OUI{base[ouiTag]{v}} }

// ParseOUI 解析 OUI 字符串，支持 xx-xx-xx、xx:xx:xx、xxxxxx。
func ParseOUI(s string) (OUI, error) {
	v, err := parseAs[ouiTag](s)
	return newOUI(v), err
}

// MustParseOUI 类似 [ParseOUI]，但解析失败时 panic。
func MustParseOUI(s string) OUI {
	v, err := parseAs[ouiTag](s)
	return newOUI(mustAs[ouiTag](v, err, s))
}

// OUIFromUint64 从整数构造 OUI。
func OUIFromUint64(n uint64) (OUI, error) {
	v, err := fromUint64As[ouiTag](n)
	return newOUI(v), err
}

// OUIFromBytes 从 3 字节大端表示构造 OUI。
func OUIFromBytes(b []byte) (OUI, error) {
	v, err := fromBytesAs[ouiTag](b)
	return newOUI(v), err
}

// Compare 按数值比较两个 OUI。
func (o OUI) Compare(other OUI) int { return cmp.Compare(o.v, other.v) }

// =============================================================================
// CDI32
// =============================================================================

// CDI32 32 位上下文相关标识符。
type CDI32 struct{ base[cdi32Tag] }

func newCDI32(v uint64) CDI32 { return CDI32{base[cdi32Tag]{v}} }

// ParseCDI32 解析 CDI-32 字符串。
func ParseCDI32(s string) (CDI32, error) {
	v, err := parseAs[cdi32Tag](s)
	return newCDI32(v), err
}

// MustParseCDI32 类似 [ParseCDI32]，但解析失败时 panic。
func MustParseCDI32(s string) CDI32 {
	v, err := parseAs[cdi32Tag](s)
	return newCDI32(mustAs[cdi32Tag](v, err, s))
}

// CDI32FromUint64 从整数构造 CDI-32。
func CDI32FromUint64(n uint64) (CDI32, error) {
	v, err := fromUint64As[cdi32Tag](n)
	return newCDI32(v), err
}

// CDI32FromBytes 从 4 字节大端表示构造 CDI-32。
func CDI32FromBytes(b []byte) (CDI32, error) {
	v, err := fromBytesAs[cdi32Tag](b)
	return newCDI32(v), err
}

// OUI 返回最高 24 位。
func (c CDI32) OUI() OUI { return prefixOUI[cdi32Tag](c.v) }

// Compare 按数值比较。
func (c CDI32) Compare(other CDI32) int { return cmp.Compare(c.v, other.v) }

// =============================================================================
// CDI40
// =============================================================================

// CDI40 40 位上下文相关标识符。
type CDI40 struct{ base[cdi40Tag] }

func newCDI40(v uint64) CDI40 { return CDI40{base[cdi40Tag]{v}} }

// ParseCDI40 解析 CDI-40 字符串。
func ParseCDI40(s string) (CDI40, error) {
	v, err := parseAs[cdi40Tag](s)
	return newCDI40(v), err
}

// MustParseCDI40 类似 [ParseCDI40]，但解析失败时 panic。
func MustParseCDI40(s string) CDI40 {
	v, err := parseAs[cdi40Tag](s)
	return newCDI40(mustAs[cdi40Tag](v, err, s))
}

// CDI40FromUint64 从整数构造 CDI-40。
func CDI40FromUint64(n uint64) (CDI40, error) {
	v, err := fromUint64As[cdi40Tag](n)
	return newCDI40(v), err
}

// CDI40FromBytes 从 5 字节大端表示构造 CDI-40。
func CDI40FromBytes(b []byte) (CDI40, error) {
	v, err := fromBytesAs[cdi40Tag](b)
	return newCDI40(v), err
}

// OUI 返回最高 24 位。
func (c CDI40) OUI() OUI { return prefixOUI[cdi40Tag](c.v) }

// Compare 按数值比较。
func (c CDI40) Compare(other CDI40) int { return cmp.Compare(c.v, other.v) }

// =============================================================================
// EUI48 / MAC
// =============================================================================

// EUI48 48 位扩展唯一标识符。
type EUI48 struct{ base[eui48Tag] }

func newEUI48(v uint64) EUI48 { return EUI48{base[eui48Tag]{v}} }

// ParseEUI48 解析 EUI-48 字符串，支持
// xx-xx-xx-xx-xx-xx、xx:xx:xx:xx:xx:xx、xxxx.xxxx.xxxx、xxxxxxxxxxxx。
func ParseEUI48(s string) (EUI48, error) {
	v, err := parseAs[eui48Tag](s)
	return newEUI48(v), err
}

// MustParseEUI48 类似 [ParseEUI48]，但解析失败时 panic。
func MustParseEUI48(s string) EUI48 {
	v, err := parseAs[eui48Tag](s)
	return newEUI48(mustAs[eui48Tag](v, err, s))
}

// EUI48FromUint64 从整数构造 EUI-48。
func EUI48FromUint64(n uint64) (EUI48, error) {
	v, err := fromUint64As[eui48Tag](n)
	return newEUI48(v), err
}

// EUI48FromBytes 从 6 字节大端表示构造 EUI-48。
func EUI48FromBytes(b []byte) (EUI48, error) {
	v, err := fromBytesAs[eui48Tag](b)
	return newEUI48(v), err
}

// OUI 返回最高 24 位。
func (e EUI48) OUI() OUI { return prefixOUI[eui48Tag](e.v) }

// MAC 将 EUI-48 转换为 MAC 类型，数值不变。
func (e EUI48) MAC() MAC { return newMAC(e.v) }

// HardwareAddr 返回 [net.HardwareAddr] 表示。
func (e EUI48) HardwareAddr() net.HardwareAddr { return e.Bytes() }

// Compare 按数值比较。
func (e EUI48) Compare(other EUI48) int { return cmp.Compare(e.v, other.v) }

// MAC 是 [EUI48] 的子类型，两者可以相互转换但不相等。
type MAC struct{ base[macTag] }

func newMAC(v uint64) MAC { return MAC{base[macTag]{v}} }

// ParseMAC 解析 MAC 地址字符串，格式同 [ParseEUI48]。
func ParseMAC(s string) (MAC, error) {
	v, err := parseAs[macTag](s)
	return newMAC(v), err
}

// MustParseMAC 类似 [ParseMAC]，但解析失败时 panic。
func MustParseMAC(s string) MAC {
	v, err := parseAs[macTag](s)
	return newMAC(mustAs[macTag](v, err, s))
}

// MACFromUint64 从整数构造 MAC 地址。
func MACFromUint64(n uint64) (MAC, error) {
	v, err := fromUint64As[macTag](n)
	return newMAC(v), err
}

// MACFromBytes 从 6 字节大端表示构造 MAC 地址。
func MACFromBytes(b []byte) (MAC, error) {
	v, err := fromBytesAs[macTag](b)
	return newMAC(v), err
}

// OUI 返回最高 24 位。
func (m MAC) OUI() OUI { return prefixOUI[macTag](m.v) }

// EUI48 将 MAC 转换为其父类型 EUI-48，数值不变。
func (m MAC) EUI48() EUI48 { return newEUI48(m.v) }

// HardwareAddr 返回 [net.HardwareAddr] 表示。
func (m MAC) HardwareAddr() net.HardwareAddr { return m.Bytes() }

// Compare 按数值比较。
func (m MAC) Compare(other MAC) int { return cmp.Compare(m.v, other.v) }

// =============================================================================
// EUI60
// =============================================================================

// EUI60 60 位扩展唯一标识符。
type EUI60 struct{ base[eui60Tag] }

func newEUI60(v uint64) EUI60 { return EUI60{base[eui60Tag]{v}} }

// ParseEUI60 解析 EUI-60 字符串。
func ParseEUI60(s string) (EUI60, error) {
	v, err := parseAs[eui60Tag](s)
	return newEUI60(v), err
}

// MustParseEUI60 类似 [ParseEUI60]，但解析失败时 panic。
func MustParseEUI60(s string) EUI60 {
	v, err := parseAs[eui60Tag](s)
	return newEUI60(mustAs[eui60Tag](v, err, s))
}

// EUI60FromUint64 从整数构造 EUI-60。
func EUI60FromUint64(n uint64) (EUI60, error) {
	v, err := fromUint64As[eui60Tag](n)
	return newEUI60(v), err
}

// EUI60FromBytes 从 8 字节大端表示构造 EUI-60，末字节低 4 位被忽略。
func EUI60FromBytes(b []byte) (EUI60, error) {
	v, err := fromBytesAs[eui60Tag](b)
	return newEUI60(v), err
}

// OUI 返回最高 24 位。
func (e EUI60) OUI() OUI { return prefixOUI[eui60Tag](e.v) }

// Compare 按数值比较。
func (e EUI60) Compare(other EUI60) int { return cmp.Compare(e.v, other.v) }

// =============================================================================
// EUI64
// =============================================================================

// EUI64 64 位扩展唯一标识符。
type EUI64 struct{ base[eui64Tag] }

func newEUI64(v uint64) EUI64 { return EUI64{base[eui64Tag]{v}} }

// ParseEUI64 解析 EUI-64 字符串。
func ParseEUI64(s string) (EUI64, error) {
	v, err := parseAs[eui64Tag](s)
	return newEUI64(v), err
}

// MustParseEUI64 类似 [ParseEUI64]，但解析失败时 panic。
func MustParseEUI64(s string) EUI64 {
	v, err := parseAs[eui64Tag](s)
	return newEUI64(mustAs[eui64Tag](v, err, s))
}

// EUI64FromUint64 从整数构造 EUI-64，任何 uint64 都有效。
func EUI64FromUint64(n uint64) EUI64 {
	return newEUI64(n)
}

// EUI64FromBytes 从 8 字节大端表示构造 EUI-64。
func EUI64FromBytes(b []byte) (EUI64, error) {
	v, err := fromBytesAs[eui64Tag](b)
	return newEUI64(v), err
}

// OUI 返回最高 24 位。
func (e EUI64) OUI() OUI { return prefixOUI[eui64Tag](e.v) }

// HardwareAddr 返回 [net.HardwareAddr] 表示。
func (e EUI64) HardwareAddr() net.HardwareAddr { return e.Bytes() }

// Compare 按数值比较。
func (e EUI64) Compare(other EUI64) int { return cmp.Compare(e.v, other.v) }
