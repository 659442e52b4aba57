package xhwaddr

import (
	"iter"
	"math/big"
)

// Range 返回从 from 到 to（包含）的地址迭代器。
// from 与 to 类型不同、任一无效或 from > to 时返回空迭代器。
// 到达该类型最大值时自动终止。
//
// 示例：
//
//	from := xhwaddr.KindEUI48.MustParse("00-00-00-00-00-01")
//	to := xhwaddr.KindEUI48.MustParse("00-00-00-00-00-05")
//	for addr := range xhwaddr.Range(from, to) {
//	    fmt.Println(addr)
//	}
func Range(from, to Addr) iter.Seq[Addr] {
	return func(yield func(Addr) bool) {
		if !sameKindRange(from, to) {
			return
		}
		current := from
		for {
			if !yield(current) || current == to {
				return
			}
			next, err := current.Next()
			if err != nil {
				return
			}
			current = next
		}
	}
}

// RangeN 返回从 start 开始的 n 个连续地址的迭代器。
// n <= 0 或 start 无效时返回空迭代器；溢出时提前终止。
func RangeN(start Addr, n int) iter.Seq[Addr] {
	return func(yield func(Addr) bool) {
		if n <= 0 || !start.IsValid() {
			return
		}
		current := start
		for remaining := n; ; {
			if !yield(current) {
				return
			}
			remaining--
			if remaining == 0 {
				return
			}
			next, err := current.Next()
			if err != nil {
				return
			}
			current = next
		}
	}
}

// RangeReverse 返回从 to 递减到 from（包含）的地址迭代器。
// 条件同 [Range]。
func RangeReverse(from, to Addr) iter.Seq[Addr] {
	return func(yield func(Addr) bool) {
		if !sameKindRange(from, to) {
			return
		}
		current := to
		for {
			if !yield(current) || current == from {
				return
			}
			prev, err := current.Prev()
			if err != nil {
				return
			}
			current = prev
		}
	}
}

// RangeCount 返回 [Range] 会产生的地址数量。
// 使用 [big.Int]，最大可达 2^size。
func RangeCount(from, to Addr) *big.Int {
	if !sameKindRange(from, to) {
		return new(big.Int)
	}
	n := new(big.Int).Sub(to.Big(), from.Big())
	return n.Add(n, big.NewInt(1))
}

// CollectN 将迭代器中的地址收集到切片中，最多 maxCount 个。
// maxCount <= 0 表示不限制。
func CollectN(seq iter.Seq[Addr], maxCount int) []Addr {
	var result []Addr
	if maxCount > 0 {
		result = make([]Addr, 0, min(maxCount, 1<<20))
	}
	for addr := range seq {
		if maxCount > 0 && len(result) >= maxCount {
			break
		}
		result = append(result, addr)
	}
	return result
}

func sameKindRange(from, to Addr) bool {
	return from.kind != nil && from.kind == to.kind && Compare(from, to) <= 0
}
