package main

import "strings"

// usageError 参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func newUsageError(msg string) error { return &usageError{msg: msg} }

// exitError 命令已完成输出，只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// cliUsageMarkers 是 urfave/cli 参数解析错误的固定前缀。
var cliUsageMarkers = []string{
	"flag provided but not defined",
	"flag needs an argument",
	"invalid value",
	"No help topic for",
	"Required flag",
}

func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, m := range cliUsageMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
