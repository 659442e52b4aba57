// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xhwaddr: 定宽硬件地址（OUI、CDI-32/40、EUI-48/MAC、EUI-60、EUI-64 及自定义类型），
//     多格式解析与候选类型判定、排序、序列化
package util
