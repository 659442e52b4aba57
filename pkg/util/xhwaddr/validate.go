package xhwaddr

// 以下判断基于首字节的 I/G 位（bit 0）与 U/L 位（bit 1），
// 只对位宽不小于 8 的类型有意义，其他情况返回 false。

// IsUnicast 报告 a 是否为单播地址（首字节 bit 0 为 0）。
func (a Addr) IsUnicast() bool {
	return a.hasFirstOctet() && a.raw[0]&0x01 == 0
}

// IsMulticast 报告 a 是否为多播地址（首字节 bit 0 为 1）。
// 广播地址也是多播地址。
func (a Addr) IsMulticast() bool {
	return a.hasFirstOctet() && a.raw[0]&0x01 != 0
}

// IsLocallyAdministered 报告 a 是否为本地管理地址（首字节 bit 1 为 1）。
// 虚拟机、容器等通常使用本地管理地址。
func (a Addr) IsLocallyAdministered() bool {
	return a.hasFirstOctet() && a.raw[0]&0x02 != 0
}

// IsUniversallyAdministered 报告 a 是否为全球唯一地址（首字节 bit 1 为 0）。
func (a Addr) IsUniversallyAdministered() bool {
	return a.hasFirstOctet() && a.raw[0]&0x02 == 0
}

// IsZero 报告 a 是否为有效的全零地址。零值 Addr{} 返回 false。
func (a Addr) IsZero() bool {
	if a.kind == nil {
		return false
	}
	for i := 0; i < len(a.raw); i++ {
		if a.raw[i] != 0 {
			return false
		}
	}
	return true
}

// IsBroadcast 报告 a 是否为全一地址（如 FF-FF-FF-FF-FF-FF）。
func (a Addr) IsBroadcast() bool {
	return a.kind != nil && a == a.kind.Broadcast()
}

func (a Addr) hasFirstOctet() bool {
	return a.kind != nil && a.kind.size >= 8
}
