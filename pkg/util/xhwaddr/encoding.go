package xhwaddr

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MarshalText 实现 [encoding.TextMarshaler]，输出规范格式。
func (b base[T]) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]。
// 支持该类型的所有格式，空输入设置为全零地址。
func (b *base[T]) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		b.v = 0
		return nil
	}
	v, err := parseAs[T](string(text))
	if err != nil {
		return err
	}
	b.v = v
	return nil
}

// MarshalJSON 实现 [json.Marshaler]，输出带引号的规范格式字符串。
//
// 规范格式只包含十六进制字符和分隔符，无需 JSON 转义。
func (b base[T]) MarshalJSON() ([]byte, error) {
	s := b.String()
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	buf = append(buf, s...)
	buf = append(buf, '"')
	return buf, nil
}

// UnmarshalJSON 实现 [json.Unmarshaler]。
// null 和空字符串设置为全零地址。
func (b *base[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		b.v = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %w", ErrWrongType, err)
	}
	return b.UnmarshalText([]byte(s))
}

// Value 实现 [database/sql/driver.Valuer]，写入规范格式字符串。
func (b base[T]) Value() (driver.Value, error) {
	return b.String(), nil
}

// Scan 实现 [database/sql.Scanner]。
// 支持 string、[]byte（文本或 ByteLen() 字节的二进制）、int64 和 nil。
func (b *base[T]) Scan(src any) error {
	k := kindOf[T]()
	switch v := src.(type) {
	case nil:
		b.v = 0
		return nil
	case string:
		return b.UnmarshalText([]byte(v))
	case []byte:
		// 二进制列（如 BINARY(6)）存原始字节；文本格式至少 NibbleLen() 字符，
		// 比 ByteLen() 长，两者不会冲突。
		if len(v) == k.ByteLen() {
			n, err := fromBytesAs[T](v)
			if err != nil {
				return err
			}
			b.v = n
			return nil
		}
		return b.UnmarshalText(v)
	case int64:
		if v < 0 {
			return invalidValueError(v, "is negative for", k)
		}
		n, err := fromUint64As[T](uint64(v))
		if err != nil {
			return err
		}
		b.v = n
		return nil
	default:
		return wrongTypeError(src, k)
	}
}
