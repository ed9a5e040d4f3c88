// Package include 负责 #include 指令的提取与解析。
//
// 只做单行模式匹配，不处理宏展开、条件编译或 \ 续行。
// 解析出的目标按策略列表依次尝试落到根目录内的真实文件上，
// 找不到的目标视为系统头文件，直接丢弃。
package include

import (
	"bufio"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
)

// includePattern 匹配 `#include <x>` 和 `#include "x"`，允许 # 前后及 include 后有空白。
var includePattern = regexp.MustCompile(`^\s*#\s*include\s*[<"]([^">]+)[">]`)

// Parse 逐行提取 include 目标，保持原样（不规范化分隔符）。
func Parse(reader io.Reader) ([]string, error) {
	targets := make([]string, 0)
	bufferedReader := bufio.NewReader(reader)

	for {
		line, err := bufferedReader.ReadString('\n')
		if errors.Is(err, io.EOF) && len(line) == 0 {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return targets, err
		}

		if match := includePattern.FindStringSubmatch(line); match != nil {
			targets = append(targets, strings.TrimSpace(match[1]))
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	return targets, nil
}

// ParseFile 打开文件并提取 include 目标。
func ParseFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}
