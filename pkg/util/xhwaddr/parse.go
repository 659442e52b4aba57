package xhwaddr

import (
	"fmt"
	"slices"
	"strings"
)

// ParseString 按类型 k 的格式解析 s。
// 大小写不敏感，不去除首尾空白。
func (k *Kind) ParseString(s string) (Addr, error) {
	return parseText(s, []*Kind{k})
}

// MustParse 类似 [Kind.ParseString]，但解析失败时 panic。
// 仅用于包级变量初始化或测试。
func (k *Kind) MustParse(s string) Addr {
	a, err := k.ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("xhwaddr: %s.MustParse(%q): %v", k.name, s, err))
	}
	return a
}

// candidate 是一个与输入等长的 (格式模式, 类型) 组合。
type candidate struct {
	pattern string
	kind    *Kind
}

// collectCandidates 收集所有长度为 n 的格式模式。
// 多个类型声明了相同的模式文本时，取候选列表中靠前的类型。
func collectCandidates(n int, kinds []*Kind) []candidate {
	var cands []candidate
	for _, k := range kinds {
		for _, f := range k.formats {
			if len(f) != n {
				continue
			}
			if slices.ContainsFunc(cands, func(c candidate) bool { return c.pattern == f }) {
				continue
			}
			cands = append(cands, candidate{pattern: f, kind: k})
		}
	}
	slices.SortFunc(cands, func(a, b candidate) int {
		return strings.Compare(a.pattern, b.pattern)
	})
	return cands
}

// parseText 在 kinds 的所有格式中为 s 找出唯一匹配的 (格式, 类型)。
//
// 候选模式按字典序排序后，逐位置收缩窗口 [start, end)：
// 十六进制字符期望模式中对应位置为占位符，其他字符期望逐字相同。
// 由于列表有序，每一步之后窗口内都是在已扫描前缀上完全一致的连续区间；
// 窗口为空即无法解析。扫描结束后窗口内至多剩一个模式（模式已去重）。
func parseText(s string, kinds []*Kind) (Addr, error) {
	if s == "" {
		return Addr{}, invalidValueError(s, "is empty, cannot be parsed as", kinds...)
	}
	cands := collectCandidates(len(s), kinds)

	nibbles := make([]byte, 0, len(s))
	start, end := 0, len(cands)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if v := hexValue(c); v >= 0 {
			nibbles = append(nibbles, byte(v))
			c = Placeholder
		} else if c == Placeholder {
			// 占位符只出现在模式定义中，作为输入字符时不匹配任何模式。
			end = start
		}
		for start < end && cands[start].pattern[i] < c {
			start++
		}
		for start < end && cands[end-1].pattern[i] > c {
			end--
		}
		if start >= end {
			return Addr{}, invalidValueError(s, "cannot be parsed as", kinds...)
		}
	}

	k := cands[start].kind
	return Addr{kind: k, raw: packNibbles(nibbles, k)}, nil
}

// packNibbles 将按最高位优先顺序收集的 nibble 写入 ByteLen() 字节，
// 并清除超出 size 的对齐填充位。
func packNibbles(nibbles []byte, k *Kind) string {
	raw := make([]byte, k.ByteLen())
	for j, v := range nibbles {
		if j&1 == 0 {
			raw[j>>1] |= v << 4
		} else {
			raw[j>>1] |= v
		}
	}
	raw[len(raw)-1] &= 0xff << k.padBits()
	return string(raw)
}

// hexValue 返回十六进制字符的数值，无效字符返回 -1。
func hexValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return -1
	}
}
