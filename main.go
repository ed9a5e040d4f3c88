// main.go 是 ccloc 的程序入口。
// 该文件仅负责注入版本号、执行 Cobra 根命令并把错误映射为退出码，
// 业务逻辑保持在 cmd/internal 目录中，便于测试和扩展。
package main

import (
	"fmt"
	"os"

	"ccloc/cmd"
	"ccloc/internal/errors"
)

// version 默认值为 dev。
// 发布时可以通过 -ldflags "-X main.version=vX.Y.Z" 覆盖该值。
var version = "dev"

func main() {
	if err := cmd.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "ccloc error: %v\n", err)
		if os.Getenv("CCLOC_DEBUG") != "" {
			fmt.Fprintln(os.Stderr, errors.ErrorWithStackTrace(err))
		}
		os.Exit(errors.ExitCode(err))
	}
}
