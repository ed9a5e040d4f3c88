// Package log 构造 ccloc 使用的 logrus 日志对象。
// 日志只写 stderr（或调用方给定的 writer），stdout 留给统计报告。
package log

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel 是未指定级别时使用的日志级别。
const DefaultLevel = "warn"

// New 按级别名称创建日志对象。级别名称无效时返回错误。
func New(writer io.Writer, level string) (*logrus.Logger, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = DefaultLevel
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetOutput(writer)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	return logger, nil
}

// Discard 返回一个丢弃全部输出的日志对象，供未注入 logger 的调用方使用。
func Discard() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
