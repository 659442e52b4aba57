// Package xconf 基于 koanf 的最小化配置加载器。
//
// 负责从 YAML/JSON 文件或字节数据加载配置、按路径反序列化到结构体，
// 并允许命令行参数覆盖单个键（[Config.Set]）。不负责字段校验和热重载。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 用法
//
//	cfg, err := xconf.New("xhwaddrctl.yaml")
//	if err != nil {
//		return err
//	}
//	if err := cfg.Set("log.level", "debug"); err != nil {
//		return err
//	}
//	var app AppConfig
//	if err := cfg.Unmarshal("", &app); err != nil {
//		return err
//	}
//
// 所有错误都包装了本包的哨兵错误，可用 errors.Is 判断类别。
package xconf
