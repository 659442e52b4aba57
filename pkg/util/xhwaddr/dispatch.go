package xhwaddr

import (
	"fmt"
	"net"
)

// Addresser 由所有类型化地址（[OUI]、[EUI48] 等）实现。
type Addresser interface {
	Addr() Addr
}

var errNoKinds = fmt.Errorf("%w: at least one kind is required", ErrWrongType)

// Parse 同时按多个候选类型解析 v。
//
// 按 v 的类型分派：
//   - string：在所有候选类型的全部格式中寻找唯一匹配，见 [ParseString]
//   - []byte、[net.HardwareAddr]：取第一个满足 8*(len-1) < size <= 8*len 的候选类型
//   - [Addr] 或 [Addresser]：类型是某个候选类型（或其子类型）时原样返回
//   - 其他：返回 [ErrWrongType]
//
// 未提供候选类型时返回 [ErrWrongType]。
//
//	addr, err := xhwaddr.Parse(input, xhwaddr.KindEUI64, xhwaddr.KindEUI48)
//
// 等价于依次尝试各类型的构造函数，但只扫描一次输入。
func Parse(v any, kinds ...*Kind) (Addr, error) {
	if len(kinds) == 0 {
		return Addr{}, errNoKinds
	}
	switch x := v.(type) {
	case string:
		return parseText(x, kinds)
	case []byte:
		return parseBytes(x, kinds)
	case net.HardwareAddr:
		return parseBytes(x, kinds)
	case Addr:
		return passThrough(x, v, kinds)
	case Addresser:
		return passThrough(x.Addr(), v, kinds)
	}
	return Addr{}, wrongTypeError(v, kinds...)
}

// ParseString 按多个候选类型解析字符串。
// 同一字符串能按多个类型的相同格式解析时，取靠前的类型。
func ParseString(s string, kinds ...*Kind) (Addr, error) {
	if len(kinds) == 0 {
		return Addr{}, errNoKinds
	}
	return parseText(s, kinds)
}

// ParseBytes 按字节长度在候选类型中选择第一个匹配的类型并构造地址。
func ParseBytes(b []byte, kinds ...*Kind) (Addr, error) {
	if len(kinds) == 0 {
		return Addr{}, errNoKinds
	}
	return parseBytes(b, kinds)
}

func parseBytes(b []byte, kinds []*Kind) (Addr, error) {
	maxSize := len(b) * 8
	minSize := maxSize - 7
	for _, k := range kinds {
		if minSize <= k.size && k.size <= maxSize {
			return k.FromBytes(b)
		}
	}
	return Addr{}, invalidValueError([]byte(b), "has wrong length for", kinds...)
}

func passThrough(a Addr, orig any, kinds []*Kind) (Addr, error) {
	if a.kind != nil {
		for _, k := range kinds {
			if a.kind.IsA(k) {
				return a, nil
			}
		}
	}
	return Addr{}, wrongTypeError(orig, kinds...)
}
