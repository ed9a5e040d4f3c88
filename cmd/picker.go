package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"ccloc/internal/errors"
)

// ErrNoFileSelected 表示交互式选择时没有给出起始文件。
var ErrNoFileSelected = errors.WithExitCode(fmt.Errorf("no file selected"), errors.ExitCodeGeneric)

// promptStartFile 在未给出起始文件时从输入流读取一行路径。
// 提示语写到 prompt（通常是 stderr），空输入或 EOF 视为未选择。
func promptStartFile(input io.Reader, prompt io.Writer, extensions []string) (string, error) {
	if _, err := fmt.Fprintf(prompt, "Select C/C++ start file (%s): ", strings.Join(extensions, " ")); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.WithStackTrace(err)
	}

	selected := strings.TrimSpace(line)
	if selected == "" {
		return "", ErrNoFileSelected
	}
	return selected, nil
}
