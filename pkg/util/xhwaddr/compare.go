package xhwaddr

import (
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Compare 比较任意两个地址，不论类型和位宽，返回 -1、0 或 1。
//
// 排序依据依次为：
//  1. 最高位对齐后的位串（较窄者低位补零）
//  2. 位宽，较窄者在前
//  3. [Kind.Rank]
//
// 因此一个地址前缀（如 OUI）总是紧挨着排在以它开头的更宽地址之前：
//
//	OUI("00-00-00") < CDI32("00-00-00-00") < OUI("00-00-01")
//
// Compare 返回 0 当且仅当 a == b。零值排在所有有效地址之前。
func Compare(a, b Addr) int {
	n := max(len(a.raw), len(b.raw))
	for i := range n {
		if c := cmp.Compare(byteAt(a.raw, i), byteAt(b.raw, i)); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.Size(), b.Size()); c != 0 {
		return c
	}
	return cmp.Compare(a.rank(), b.rank())
}

// Compare 等价于 Compare(a, b)。
func (a Addr) Compare(b Addr) int { return Compare(a, b) }

// Less 报告 a 是否排在 b 之前。
func (a Addr) Less(b Addr) bool { return Compare(a, b) < 0 }

// Sort 按 [Compare] 原地排序。
func Sort(addrs []Addr) {
	slices.SortFunc(addrs, Compare)
}

// Hash 返回由类型和数值决定的 64 位哈希，相等的地址哈希相等。
// 使用 xxhash，结果在不同进程间一致（调用方自定义类型的 rank 取决于创建顺序）。
func (a Addr) Hash() uint64 {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(a.rank()))
	d := xxhash.New()
	_, _ = d.Write(buf[:])
	if a.kind != nil {
		_, _ = d.WriteString(a.kind.name)
	}
	_, _ = d.WriteString(a.raw)
	return d.Sum64()
}

func (a Addr) rank() int {
	if a.kind == nil {
		return -1
	}
	return a.kind.rank
}

func byteAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}
