// Package cmd 提供 ccloc 的命令行入口与子命令编排。
package cmd

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ccloc/internal/config"
	"ccloc/internal/errors"
	"ccloc/internal/log"
)

// globalOptions 是所有子命令共享的参数。
type globalOptions struct {
	configPath string
	logLevel   string
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	rootCmd := newRootCmd(version)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string) *cobra.Command {
	options := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ccloc",
		Short: "统计 C/C++ 起始文件及其 #include 闭包的非注释行数",
		Long: "ccloc 从一个 C/C++ 起始文件出发，沿 #include 关系在根目录内做广度优先遍历，\n" +
			"按文件名去重后逐文件统计非注释行数，支持表格、JSON 与 CSV 输出。",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&options.configPath, "config", "", "配置文件路径，默认探测当前目录下的 ccloc.yml / ccloc.yaml")
	rootCmd.PersistentFlags().StringVar(&options.logLevel, "log-level", "", "日志级别: trace, debug, info, warn, error")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newExtensionsCmd(options))
	rootCmd.AddCommand(newDupesCmd(options))
	rootCmd.AddCommand(newCountCmd(options))

	return rootCmd
}

// loadSettings 读取配置文件与环境变量，并按 --log-level 覆盖后创建日志对象。
// 日志写到 stderr，stdout 只留给统计结果。
func loadSettings(cmd *cobra.Command, options *globalOptions) (*config.Config, logrus.FieldLogger, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, nil, errors.WithStackTrace(err)
	}

	cfg, err := config.Load(workingDir, options.configPath)
	if err != nil {
		return nil, nil, errors.WithStackTrace(err)
	}

	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = options.logLevel
	}

	logger, err := log.New(cmd.ErrOrStderr(), strings.ToLower(level))
	if err != nil {
		return nil, nil, errors.WithExitCode(err, errors.ExitCodeUsage)
	}

	if cfg.Source != "" {
		logger.WithField("path", cfg.Source).Debug("loaded config file")
	}
	return cfg, logger, nil
}
