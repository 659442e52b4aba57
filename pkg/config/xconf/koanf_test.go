package xconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toolConfig struct {
	Kinds []string  `koanf:"kinds"`
	Log   logConfig `koanf:"log"`
	Out   outConfig `koanf:"output"`
}

type logConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type outConfig struct {
	Format int  `koanf:"format"`
	JSON   bool `koanf:"json"`
}

const testYAML = `
kinds: [EUI48, EUI64]
log:
  level: debug
  format: json
output:
  format: 2
  json: true
`

const testJSON = `{
  "kinds": ["EUI48", "EUI64"],
  "log": {"level": "debug", "format": "json"},
  "output": {"format": 2, "json": true}
}`

var wantTool = toolConfig{
	Kinds: []string{"EUI48", "EUI64"},
	Log:   logConfig{Level: "debug", Format: "json"},
	Out:   outConfig{Format: 2, JSON: true},
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	tests := []struct {
		file    string
		content string
		format  Format
	}{
		{"tool.yaml", testYAML, FormatYAML},
		{"tool.YML", testYAML, FormatYAML},
		{"tool.json", testJSON, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg, err := New(path)
			require.NoError(t, err)
			assert.Equal(t, path, cfg.Path())
			assert.Equal(t, tt.format, cfg.Format())

			var got toolConfig
			require.NoError(t, cfg.Unmarshal("", &got))
			assert.Equal(t, wantTool, got)
			assert.Equal(t, "debug", cfg.Client().String("log.level"))
		})
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = New(writeFile(t, "tool.toml", "a = 1"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)

	path := writeFile(t, "bad.json", "{not json")
	_, err = New(path)
	assert.ErrorIs(t, err, ErrParseFailed)
	assert.Contains(t, err.Error(), path)
}

func TestNewFromBytes(t *testing.T) {
	cfg, err := NewFromBytes([]byte(testYAML), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())

	var l logConfig
	require.NoError(t, cfg.Unmarshal("log", &l))
	assert.Equal(t, wantTool.Log, l)

	empty, err := NewFromBytes(nil, FormatJSON)
	require.NoError(t, err)
	var got toolConfig
	require.NoError(t, empty.Unmarshal("", &got))
	assert.Equal(t, toolConfig{}, got)

	_, err = NewFromBytes([]byte("a: 1"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSet(t *testing.T) {
	cfg, err := NewFromBytes([]byte(testYAML), FormatYAML)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("log.level", "warn"))
	require.NoError(t, cfg.Set("kinds", []string{"OUI"}))
	assert.ErrorIs(t, cfg.Set(" ", 1), ErrEmptyKey)

	var got toolConfig
	require.NoError(t, cfg.Unmarshal("", &got))
	assert.Equal(t, "warn", got.Log.Level)
	assert.Equal(t, "json", got.Log.Format, "sibling keys survive")
	assert.Equal(t, []string{"OUI"}, got.Kinds)

	e := Empty()
	require.NoError(t, e.Set("output.json", true))
	assert.True(t, e.Client().Bool("output.json"))
}

func TestUnmarshalError(t *testing.T) {
	cfg, err := NewFromBytes([]byte(`{"output": {"format": "first"}}`), FormatJSON)
	require.NoError(t, err)
	var got toolConfig
	assert.ErrorIs(t, cfg.Unmarshal("", &got), ErrUnmarshalFailed)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"toml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := FormatOf("/etc/xhwaddrctl")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
