package xconf

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	delim = "."
	tag   = "koanf"
)

type koanfConfig struct {
	k      *koanf.Koanf
	path   string
	format Format
}

// New 从文件加载配置，格式由扩展名决定。空文件得到空配置。
func New(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	c, err := load(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.path = path
	return c, nil
}

// NewFromBytes 从字节数据加载配置，需显式指定格式。
func NewFromBytes(data []byte, format Format) (Config, error) {
	return load(data, format)
}

// Empty 返回空配置，用于未指定配置文件的场景。
func Empty() Config {
	return &koanfConfig{k: koanf.New(delim), format: FormatYAML}
}

func load(data []byte, format Format) (*koanfConfig, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(delim)
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
		}
	}
	return &koanfConfig{k: k, format: format}, nil
}

func (c *koanfConfig) Client() *koanf.Koanf { return c.k }

func (c *koanfConfig) Unmarshal(path string, target any) error {
	err := c.k.UnmarshalWithConf(path, target, koanf.UnmarshalConf{Tag: tag})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}

func (c *koanfConfig) Set(key string, value any) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return c.k.Set(key, value)
}

func (c *koanfConfig) Path() string { return c.path }

func (c *koanfConfig) Format() Format { return c.format }
