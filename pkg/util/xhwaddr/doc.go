// Package xhwaddr 提供定宽硬件地址（OUI、CDI、EUI、MAC）的值类型与转换工具。
//
// xhwaddr 类似 [net/netip]，但面向硬件标识符：
//
//   - 内置类型：OUI(24)、CDI32、CDI40、EUI48、MAC、EUI60、EUI64
//   - 整数、大端字节、多种文本格式之间的相互转换
//   - 多候选类型的文本解析：一次扫描确定唯一匹配的类型和格式
//   - 跨类型的全序比较与确定性哈希
//   - Text/JSON/SQL 序列化、地址运算与范围迭代
//
// # 快速示例
//
// 类型化解析：
//
//	mac, err := xhwaddr.ParseMAC("aa:bb:cc:dd:ee:ff")
//	fmt.Println(mac)        // AA-BB-CC-DD-EE-FF
//	fmt.Println(mac.OUI())  // AA-BB-CC
//
// 多候选类型解析：
//
//	addr, err := xhwaddr.Parse(input, xhwaddr.KindEUI64, xhwaddr.KindEUI48, xhwaddr.KindOUI)
//	fmt.Println(addr.Kind(), addr)
//
// 自定义类型：
//
//	kind, err := xhwaddr.NewKind("PORT12", 12, "x.xx", "xxx")
//
// # 格式模式
//
// 每个格式是定长字符串，字符 x（[Placeholder]）代表一个十六进制位，
// 输入时大小写不敏感，输出为大写；其他字符是逐字匹配的分隔符。
// 每个模式的占位符数量必须等于 ceil(size/4)，第一个模式为规范格式。
//
// 位宽不是 4 的倍数时，数值在文本中按最高位对齐：例如 10 位的值占据
// 3 个十六进制位的前 10 位，最后一位的低 2 位恒为 0，解析时这些位被丢弃。
// 字节表示同理，按 ceil(size/8) 字节最高位对齐，末字节低位填充为 0。
//
// # 解析规则
//
// [Parse] 收集候选类型中所有与输入等长的格式模式（同一模式文本以靠前的类型为准），
// 按字典序排序后逐字符收缩候选窗口。窗口为空即报错，因此输入要么唯一匹配
// 一个 (类型, 格式)，要么失败，不存在部分结果。
//
// # 类型身份
//
// 类型身份由 *[Kind] 指针决定。[KindMAC] 是 [KindEUI48] 的子类型：
// 可以通过 [Kind.FromAddr] 或 [EUI48.MAC]、[MAC.EUI48] 相互转换，但
// 相同数值的 MAC 与 EUI48 不相等。
//
// # 排序
//
// [Compare] 对任意类型的地址给出全序：先比较最高位对齐后的位串，
// 再比较位宽（窄者在前），最后比较 [Kind.Rank]。
// 内置类型的 rank 按声明顺序固定；自定义类型按创建顺序分配。
//
// # 错误处理
//
// 构造与解析失败返回 [*AddrError]，可通过 errors.Is 区分两类错误：
//
//	_, err := xhwaddr.ParseEUI48("invalid")
//	if errors.Is(err, xhwaddr.ErrInvalidValue) {
//	    // 取值无效：越界、长度错误、空字符串或无法解析
//	}
//	if errors.Is(err, xhwaddr.ErrWrongType) {
//	    // 输入的表示类型不受支持
//	}
//
// # 并发
//
// 所有操作都是纯函数，[Kind] 与 [Addr] 创建后不可变，可在多个 goroutine 中
// 直接共享使用。
package xhwaddr
