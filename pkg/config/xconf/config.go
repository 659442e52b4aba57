package xconf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/v2"
)

// Format 配置格式。
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat 解析格式名，大小写不敏感，"yml" 视为 YAML。
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatOf 根据文件扩展名判断格式。
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext[1:])
}

// Config 已加载的配置。
//
// 只封装加载、覆盖和反序列化，其他读取操作直接使用 [Config.Client]。
// 非并发安全：Set 应在启动阶段完成。
type Config interface {
	// Client 返回底层 koanf 实例。
	Client() *koanf.Koanf

	// Unmarshal 将 path 下的配置反序列化到 target，path 为空表示整个配置。
	// 结构体字段按 `koanf` 标签映射。
	Unmarshal(path string, target any) error

	// Set 覆盖单个键，key 使用 "." 分隔层级。
	Set(key string, value any) error

	// Path 返回配置文件路径，从字节数据创建时为空。
	Path() string

	// Format 返回配置格式。
	Format() Format
}
