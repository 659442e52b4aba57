package xhwaddr

import (
	"math/big"
)

// Addr 表示某一 [Kind] 的定宽硬件地址值。
//
// Addr 是不可变值类型：
//   - 零值 Addr{} 没有类型，IsValid() 返回 false
//   - 可直接比较（==）和用作 map key，== 与 [Addr.Equal] 一致
//   - 并发安全，无需加锁
//
// 内部以最高位对齐的大端字节串保存，长度为 Kind.ByteLen()，
// 位宽不是 8 的倍数时末字节低位的填充位恒为 0。
type Addr struct {
	kind *Kind
	raw  string
}

// Kind 返回地址的类型，零值返回 nil。
func (a Addr) Kind() *Kind { return a.kind }

// IsValid 报告 a 是否由构造函数创建（而非零值）。
func (a Addr) IsValid() bool { return a.kind != nil }

// Size 返回位宽，零值返回 0。
func (a Addr) Size() int {
	if a.kind == nil {
		return 0
	}
	return a.kind.size
}

// FromUint64 从整数构造地址，要求 n < 2^size。
func (k *Kind) FromUint64(n uint64) (Addr, error) {
	if k.size > 64 {
		return k.FromBig(new(big.Int).SetUint64(n))
	}
	if k.size < 64 && n>>uint(k.size) != 0 {
		return Addr{}, invalidValueError(n, "is too big for", k)
	}
	return Addr{kind: k, raw: k.encodeUint64(n)}, nil
}

// MustFromUint64 类似 [Kind.FromUint64]，但失败时 panic。
// 仅用于包级变量初始化或测试。
func (k *Kind) MustFromUint64(n uint64) Addr {
	a, err := k.FromUint64(n)
	if err != nil {
		panic(err)
	}
	return a
}

// FromBig 从任意精度整数构造地址，要求 0 <= n < 2^size。
// 位宽超过 64 的类型只能通过它或 [Kind.FromBytes] 构造大数值。
func (k *Kind) FromBig(n *big.Int) (Addr, error) {
	if n == nil {
		return Addr{}, wrongTypeError(n, k)
	}
	if n.Sign() < 0 {
		return Addr{}, invalidValueError(n, "is negative for", k)
	}
	if n.BitLen() > k.size {
		return Addr{}, invalidValueError(n, "is too big for", k)
	}
	v := new(big.Int).Lsh(n, k.padBits())
	raw := v.FillBytes(make([]byte, k.ByteLen()))
	return Addr{kind: k, raw: string(raw)}, nil
}

// FromBytes 从大端字节串构造地址，长度必须为 ByteLen()。
//
// 位宽不是 8 的倍数时，值占据高位，末字节低位的填充位被忽略。
func (k *Kind) FromBytes(b []byte) (Addr, error) {
	if len(b) != k.ByteLen() {
		return Addr{}, invalidValueError(b, "has wrong length for", k)
	}
	raw := make([]byte, len(b))
	copy(raw, b)
	raw[len(raw)-1] &= 0xff << k.padBits()
	return Addr{kind: k, raw: string(raw)}, nil
}

// FromAddr 将同一继承链上的地址转换为类型 k：
// a 的类型必须是 k 本身、k 的祖先或 k 的后代。
// 同链类型位宽相同，直接复制数值。
func (k *Kind) FromAddr(a Addr) (Addr, error) {
	if a.kind == nil || !k.related(a.kind) {
		return Addr{}, wrongTypeError(a, k)
	}
	return Addr{kind: k, raw: a.raw}, nil
}

// Zero 返回该类型的全零地址。
func (k *Kind) Zero() Addr {
	return Addr{kind: k, raw: string(make([]byte, k.ByteLen()))}
}

// Broadcast 返回该类型的全一地址（最大值）。
func (k *Kind) Broadcast() Addr {
	return Addr{kind: k, raw: string(k.allOnes())}
}

func (k *Kind) allOnes() []byte {
	raw := make([]byte, k.ByteLen())
	for i := range raw {
		raw[i] = 0xff
	}
	raw[len(raw)-1] &= 0xff << k.padBits()
	return raw
}

// encodeUint64 按最高位对齐写入 ByteLen() 个字节，要求 size <= 64。
func (k *Kind) encodeUint64(n uint64) string {
	n <<= k.padBits()
	buf := make([]byte, k.ByteLen())
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(n)
		n >>= 8
	}
	return string(buf)
}

// Bytes 返回大端字节表示（长度为 ByteLen()）。
// 返回副本，修改不影响原值。
func (a Addr) Bytes() []byte {
	return []byte(a.raw)
}

// Big 返回地址的整数值。零值返回 0。
func (a Addr) Big() *big.Int {
	v := new(big.Int).SetBytes([]byte(a.raw))
	if a.kind == nil {
		return v
	}
	return v.Rsh(v, a.kind.padBits())
}

// Uint64 返回地址的整数值。位宽超过 64 时 ok 为 false。
func (a Addr) Uint64() (n uint64, ok bool) {
	if a.kind == nil {
		return 0, true
	}
	if a.kind.size > 64 {
		return 0, false
	}
	for i := 0; i < len(a.raw); i++ {
		n = n<<8 | uint64(a.raw[i])
	}
	return n >> a.kind.padBits(), true
}

// Equal 报告两个地址是否类型相同（同一 *Kind）且数值相等。
func (a Addr) Equal(b Addr) bool {
	return a == b
}

// OUI 返回最高 24 位组成的 OUI 地址。
// 类型不带 OUI 前缀时 ok 为 false。
func (a Addr) OUI() (oui OUI, ok bool) {
	if a.kind == nil || !a.kind.ouiPrefix {
		return OUI{}, false
	}
	r := a.raw
	return newOUI(uint64(r[0])<<16 | uint64(r[1])<<8 | uint64(r[2])), true
}

// Next 返回下一个地址（当前值 +1）。
// 当前值已是该类型最大值时返回 [ErrOverflow]。
func (a Addr) Next() (Addr, error) {
	if a.kind == nil {
		return Addr{}, errNoKind
	}
	b := []byte(a.raw)
	carry := 1 << a.kind.padBits()
	for i := len(b) - 1; i >= 0 && carry != 0; i-- {
		sum := int(b[i]) + carry
		b[i] = byte(sum)
		carry = sum >> 8
	}
	if carry != 0 {
		return Addr{}, ErrOverflow
	}
	return Addr{kind: a.kind, raw: string(b)}, nil
}

// Prev 返回前一个地址（当前值 -1）。
// 当前值为 0 时返回 [ErrUnderflow]。
func (a Addr) Prev() (Addr, error) {
	if a.kind == nil {
		return Addr{}, errNoKind
	}
	b := []byte(a.raw)
	borrow := 1 << a.kind.padBits()
	for i := len(b) - 1; i >= 0 && borrow != 0; i-- {
		diff := int(b[i]) - borrow
		borrow = 0
		if diff < 0 {
			diff += 256
			borrow = 1
		}
		b[i] = byte(diff)
	}
	if borrow != 0 {
		return Addr{}, ErrUnderflow
	}
	return Addr{kind: a.kind, raw: string(b)}, nil
}
