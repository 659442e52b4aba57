package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), append([]string{"xhwaddrctl"}, args...), strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name: "default_kinds",
			args: []string{"parse", "00:1a:2b:3c:4d:5e", "0123.4567.89ab.cdef", "ac-de-48"},
			want: "EUI48\t00-1A-2B-3C-4D-5E\nEUI64\t01-23-45-67-89-AB-CD-EF\nOUI\tAC-DE-48\n",
		},
		{
			name: "output_format",
			args: []string{"-f", "1", "parse", "aabb.ccdd.eeff"},
			want: "EUI48\tAA:BB:CC:DD:EE:FF\n",
		},
		{
			name: "output_format_out_of_range",
			args: []string{"-f", "9", "parse", "aabb.ccdd.eeff"},
			want: "EUI48\tAA-BB-CC-DD-EE-FF\n",
		},
		{
			name: "kinds_order",
			args: []string{"-k", "MAC,EUI48", "parse", "aa-bb-cc-dd-ee-ff"},
			want: "MAC\tAA-BB-CC-DD-EE-FF\n",
		},
		{
			name: "repeated_kinds_flag",
			args: []string{"-k", "cdi40", "-k", "oui", "parse", "0102030405", "010203"},
			want: "CDI40\t01-02-03-04-05\nOUI\t01-02-03\n",
		},
		{
			name:  "stdin",
			args:  []string{"parse", "-"},
			stdin: "# vendor\n00-00-5E\n\n  00-00-5e-00-53-01  \n",
			want:  "OUI\t00-00-5E\nEUI48\t00-00-5E-00-53-01\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, tt.stdin, tt.args...)
			assert.Equal(t, 0, r.code, r.stderr)
			assert.Equal(t, tt.want, r.stdout)
		})
	}
}

func TestParseRejects(t *testing.T) {
	r := runCLI(t, "", "parse", "00-00-5E", "nope")
	assert.Equal(t, 1, r.code)
	assert.Equal(t, "OUI\t00-00-5E\n", r.stdout)
	assert.Contains(t, r.stderr, `xhwaddr: "nope" cannot be parsed as OUI, CDI32, CDI40, EUI48, EUI60, or EUI64`)
	assert.Contains(t, r.stderr, "parse failed")

	// 占位符字符不是合法输入
	r = runCLI(t, "", "-k", "OUI", "parse", "xx-xx-xx")
	assert.Equal(t, 1, r.code)
	assert.Empty(t, r.stdout)
}

func TestParseJSON(t *testing.T) {
	r := runCLI(t, "", "--json", "parse", "02:42:ac:11:00:02", "01-00-5E-00-00-FB")
	require.Equal(t, 0, r.code, r.stderr)

	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t,
		`{"input":"02:42:ac:11:00:02","kind":"EUI48","addr":"02-42-AC-11-00-02","size":48,"oui":"02-42-AC","local":true}`,
		lines[0])
	assert.JSONEq(t,
		`{"input":"01-00-5E-00-00-FB","kind":"EUI48","addr":"01-00-5E-00-00-FB","size":48,"oui":"01-00-5E","multicast":true}`,
		lines[1])
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no_args", []string{"parse"}, "至少需要一个地址参数"},
		{"unknown_kind", []string{"-k", "EUI99", "parse", "00-00-00"}, `未知类型 "EUI99"`},
		{"bad_log_level", []string{"--log-level", "loud", "kinds"}, "unknown level"},
		{"range_arity", []string{"range", "00-00-00"}, "两个参数"},
		{"range_kinds", []string{"range", "00-00-00", "00-00-00-00-00-01"}, "两端类型不同"},
		{"range_order", []string{"range", "00-00-02", "00-00-01"}, "大于终点"},
		{"range_bad_input", []string{"range", "zz", "00-00-01"}, "cannot be parsed"},
		{"range_negative_limit", []string{"range", "--limit=-1", "00-00-00", "00-00-01"}, "不能为负数"},
		{"sort_dash", []string{"sort", "-"}, "不支持"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, "", tt.args...)
			assert.Equal(t, 2, r.code)
			assert.Contains(t, r.stderr, "参数错误")
			assert.Contains(t, r.stderr, tt.want)
			assert.Empty(t, r.stdout)
		})
	}
}

func TestFormat(t *testing.T) {
	r := runCLI(t, "", "-k", "EUI48", "format", "aabbccddeeff")
	require.Equal(t, 0, r.code, r.stderr)

	lines := strings.Split(strings.TrimRight(r.stdout, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "EUI48 aabbccddeeff", lines[0])
	assert.Equal(t, []string{"0", "xx-xx-xx-xx-xx-xx", "AA-BB-CC-DD-EE-FF"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "xxxx.xxxx.xxxx", "AABB.CCDD.EEFF"}, strings.Fields(lines[3]))

	r = runCLI(t, "", "--json", "format", "0.1.2.3.4.5.6.7.8.9.a.b.c.d.e")
	require.Equal(t, 0, r.code, r.stderr)
	var v formatView
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &v))
	assert.Equal(t, "EUI60", v.Kind)
	assert.Equal(t, []string{
		"0.1.2.3.4.5.6.7.8.9.A.B.C.D.E",
		"01-23-45.6.7.8.9.A.B.C.D.E",
		"0123456789ABCDE",
	}, v.Formats)
}

func TestSort(t *testing.T) {
	stdin := strings.Join([]string{
		"00-1B-22-00-00-01",
		"00-1B-21",
		"# comment",
		"",
		"00-1b-21-00-00-01",
		"00:1B:21:00:00:01",
		"00-1B-21-00-00",
	}, "\n")

	r := runCLI(t, stdin, "sort", "-u")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t,
		"OUI\t00-1B-21\nCDI40\t00-1B-21-00-00\nEUI48\t00-1B-21-00-00-01\nEUI48\t00-1B-22-00-00-01\n",
		r.stdout)

	r = runCLI(t, stdin, "sort")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, 5, strings.Count(r.stdout, "\n"))
}

func TestSortFiles(t *testing.T) {
	a := writeFile(t, "a.txt", "00-00-03\n00-00-01\n")
	b := writeFile(t, "b.txt", "00-00-02\nbogus\n")

	r := runCLI(t, "", "sort", "-r", a, b)
	assert.Equal(t, 1, r.code)
	assert.Equal(t, "OUI\t00-00-03\nOUI\t00-00-02\nOUI\t00-00-01\n", r.stdout)
	assert.Contains(t, r.stderr, `"bogus" cannot be parsed`)

	r = runCLI(t, "", "sort", a, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "错误:")
	assert.Empty(t, r.stdout)
}

func TestRange(t *testing.T) {
	from, to := "00-00-5E-00-53-FE", "00-00-5E-00-54-01"

	r := runCLI(t, "", "range", from, to)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "00-00-5E-00-53-FE\n00-00-5E-00-53-FF\n00-00-5E-00-54-00\n00-00-5E-00-54-01\n", r.stdout)

	r = runCLI(t, "", "range", "--limit", "2", from, to)
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "00-00-5E-00-53-FE\n00-00-5E-00-53-FF\n", r.stdout)
	assert.Contains(t, r.stderr, "range truncated")

	r = runCLI(t, "", "range", "--count", "00-00-00-00-00-00-00-00", "FF-FF-FF-FF-FF-FF-FF-FF")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "18446744073709551616\n", r.stdout)

	r = runCLI(t, "", "--json", "range", "--count", from, to)
	require.Equal(t, 0, r.code, r.stderr)
	assert.JSONEq(t, `{"kind":"EUI48","count":"4"}`, r.stdout)
}

func TestKinds(t *testing.T) {
	r := runCLI(t, "", "-k", "EUI64,EUI48", "kinds")
	require.Equal(t, 0, r.code, r.stderr)

	lines := strings.Split(strings.TrimRight(r.stdout, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, []string{"OUI", "24", "xx-xx-xx", "xx:xx:xx", "xxxxxx"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"*", "EUI48", "48"}, strings.Fields(lines[3])[:3])
	assert.Equal(t, "MAC", strings.Fields(lines[4])[0])
	assert.Equal(t, []string{"*", "EUI64", "64"}, strings.Fields(lines[6])[:3])

	r = runCLI(t, "", "--json", "kinds")
	require.Equal(t, 0, r.code, r.stderr)
	var mac kindView
	require.NoError(t, json.Unmarshal([]byte(strings.Split(r.stdout, "\n")[4]), &mac))
	assert.Equal(t, kindView{
		Name:    "MAC",
		Size:    48,
		Parent:  "EUI48",
		Formats: []string{"xx-xx-xx-xx-xx-xx", "xx:xx:xx:xx:xx:xx", "xxxx.xxxx.xxxx", "xxxxxxxxxxxx"},
	}, mac)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "xhwaddrctl.yaml", `
kinds: [Tiny, EUI64]
custom_kinds:
  - name: Tiny
    size: 10
    formats: ["x-x-x"]
output:
  format: 3
log:
  level: error
`)

	r := runCLI(t, "", "-c", cfg, "parse", "f-f-c", "0123456789abcdef", "nope")
	assert.Equal(t, 1, r.code)
	assert.Equal(t, "Tiny\tF-F-C\nEUI64\t0123456789ABCDEF\n", r.stdout)
	assert.NotContains(t, r.stderr, "parse failed", "warn is below configured level")

	// 命令行参数覆盖配置文件
	r = runCLI(t, "", "-c", cfg, "-f", "0", "-k", "EUI64", "parse", "0123456789abcdef")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "EUI64\t01-23-45-67-89-AB-CD-EF\n", r.stdout)

	r = runCLI(t, "", "-c", cfg, "kinds")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "* Tiny")
}

func TestConfigErrors(t *testing.T) {
	dup := writeFile(t, "dup.yaml", "custom_kinds:\n  - {name: mac, size: 48, formats: [xxxxxxxxxxxx]}\n")
	r := runCLI(t, "", "-c", dup, "kinds")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "与内置类型重名")

	bad := writeFile(t, "bad.yaml", "custom_kinds:\n  - {name: Odd, size: 8, formats: [xxx]}\n")
	r = runCLI(t, "", "-c", bad, "kinds")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, `自定义类型 "Odd" 无效`)

	r = runCLI(t, "", "-c", filepath.Join(t.TempDir(), "none.yaml"), "kinds")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "failed to load config")

	r = runCLI(t, "", "-c", writeFile(t, "x.toml", ""), "kinds")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "unsupported config format")
}

func TestUUID(t *testing.T) {
	r := runCLI(t, "", "uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "f47ac10b-58cc-4372-a567-0e02b2c3d479", "garbage")
	assert.Equal(t, 1, r.code)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8\t00-C0-4F-D4-30-C8\n", r.stdout)
	assert.Contains(t, r.stderr, "UUID 版本 4 不含节点 MAC 地址")
	assert.Contains(t, r.stderr, "garbage:")
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "xhwaddrctl.log")
	r := runCLI(t, "", "--log-level", "debug", "--log-file", path, "parse", "00-00-5E")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Empty(t, r.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=parsed")
	assert.Contains(t, string(data), "command=parse")
	assert.Contains(t, string(data), "kind=OUI")
}

func TestVersion(t *testing.T) {
	r := runCLI(t, "", "--version")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.stdout, Version)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"EUI48", "EUI64", "OUI"}, splitList([]string{"EUI48, EUI64", " ", "OUI,"}))
	assert.Nil(t, splitList(nil))
}

func TestIsCLIUsageError(t *testing.T) {
	assert.True(t, isCLIUsageError(errors.New("flag provided but not defined: -x")))
	assert.True(t, isCLIUsageError(errors.New(`invalid value "a" for flag -limit`)))
	assert.False(t, isCLIUsageError(errors.New("open x: no such file or directory")))

	var u *usageError
	assert.True(t, errors.As(newUsageError("bad"), &u))
	assert.Equal(t, "bad", u.Error())
	assert.Empty(t, (&exitError{code: 1}).Error())
}

func TestNodeMAC(t *testing.T) {
	mac, err := nodeMAC("6ba7b811-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, err)
	assert.Equal(t, "00-C0-4F-D4-30-C8", mac.String())

	_, err = nodeMAC("6ba7b811-9dad-51d1-80b4-00c04fd430c8")
	assert.Error(t, err)
}
