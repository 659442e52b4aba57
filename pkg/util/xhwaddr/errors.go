package xhwaddr

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// 预定义错误变量，支持 errors.Is 判断。
var (
	// ErrWrongType 表示输入的表示类型（而非取值）不被目标类型接受，
	// 或调用 [Parse] 时未提供任何候选类型。
	ErrWrongType = errors.New("xhwaddr: wrong type")

	// ErrInvalidValue 表示输入类型可接受但取值无效：越界、长度错误、
	// 空字符串，或无法按声明格式唯一解析。
	ErrInvalidValue = errors.New("xhwaddr: invalid value")

	// ErrInvalidKind 表示 [NewKind] 收到了不合法的类型描述。
	ErrInvalidKind = errors.New("xhwaddr: invalid kind")

	// ErrOverflow 表示地址运算超过该类型的最大值。
	ErrOverflow = errors.New("xhwaddr: address overflow")

	// ErrUnderflow 表示地址运算低于零。
	ErrUnderflow = errors.New("xhwaddr: address underflow")
)

// AddrError 描述一次构造或解析失败。
//
// Err 为 [ErrWrongType] 或 [ErrInvalidValue]，可通过 errors.Is 判断。
// 错误信息形如：
//
//	"zz" cannot be parsed as OUI, EUI48, or EUI64
type AddrError struct {
	Err    error
	Value  any
	Reason string
	Kinds  []*Kind
}

func (e *AddrError) Error() string {
	var sb strings.Builder
	sb.WriteString("xhwaddr: ")
	sb.WriteString(formatValue(e.Value))
	sb.WriteByte(' ')
	sb.WriteString(e.Reason)
	if len(e.Kinds) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(joinKindNames(e.Kinds))
	}
	return sb.String()
}

func (e *AddrError) Unwrap() error { return e.Err }

// errNoKind 用于零值 Addr 上的运算。
var errNoKind = fmt.Errorf("%w: zero Addr has no kind", ErrWrongType)

func wrongTypeError(value any, kinds ...*Kind) error {
	return &AddrError{Err: ErrWrongType, Value: value, Reason: "has wrong type for", Kinds: kinds}
}

func invalidValueError(value any, reason string, kinds ...*Kind) error {
	return &AddrError{Err: ErrInvalidValue, Value: value, Reason: reason, Kinds: kinds}
}

// joinKindNames 按英文习惯拼接类型名："X"、"X or Y"、"X, Y, or Z"。
func joinKindNames(kinds []*Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		names[len(names)-1] = "or " + names[len(names)-1]
		return strings.Join(names, ", ")
	}
}

// formatValue 以无歧义形式呈现出错的输入值。
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", x)
	case []byte:
		return fmt.Sprintf("[]byte(%q)", x)
	case *big.Int:
		if x == nil {
			return "(*big.Int)(nil)"
		}
		return x.String()
	case uint64, uint, uint32, int, int64:
		return fmt.Sprintf("%d", x)
	default:
		return fmt.Sprintf("%#v", x)
	}
}
