package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ccloc/internal/closure"
	"ccloc/internal/config"
	"ccloc/internal/errors"
	"ccloc/internal/fileindex"
	"ccloc/internal/model"
	"ccloc/internal/report"
)

// countOptions 存放 count 命令的可配置参数。
type countOptions struct {
	root          string
	extensions    []string
	includeBlanks bool
	listOnly      bool
	csvPath       string
	format        string
	output        string
	includeDirs   []string
	excludes      []string
	gitignore     bool
}

// newCountCmd 创建 count 子命令。
// 示例：
//
//	ccloc count src/main.cpp
//	ccloc count src/main.cpp --root . --csv out/loc.csv
//	ccloc count src/main.cpp --format json --output report.json
func newCountCmd(global *globalOptions) *cobra.Command {
	options := countOptions{
		format: "table",
	}

	countCmd := &cobra.Command{
		Use:   "count [start]",
		Short: "统计起始文件及其 #include 闭包的非注释行数",
		Long: "从起始文件出发收集根目录内可达的全部 #include 文件并逐文件计数。\n" +
			"未给出起始文件时从标准输入读取路径。",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != "table" && format != "json" {
				return errors.WithExitCode(errors.New("unsupported format, allowed values: table, json"), errors.ExitCodeUsage)
			}

			cfg, logger, err := loadSettings(cmd, global)
			if err != nil {
				return err
			}
			options.mergeConfig(cmd, cfg)

			extensions := fileindex.NewExtensionSet(options.extensions)

			start := ""
			if len(args) == 1 {
				start = args[0]
			} else {
				start, err = promptStartFile(cmd.InOrStdin(), cmd.ErrOrStderr(), extensions.Extensions())
				if err != nil {
					return err
				}
			}

			return runCount(cmd.OutOrStdout(), cmd.ErrOrStderr(), start, format, options, extensions, logger)
		},
	}

	flags := countCmd.Flags()
	flags.StringVar(&options.root, "root", "", "搜索根目录，默认是起始文件所在目录的上一级")
	flags.StringSliceVar(&options.extensions, "exts", nil, "视为代码文件的后缀，默认 "+strings.Join(fileindex.DefaultExtensions, " "))
	flags.BoolVar(&options.includeBlanks, "include-blanks", false, "把空行计入代码行（默认不计）")
	flags.BoolVar(&options.listOnly, "list-only", false, "只列出发现的文件，不计数")
	flags.StringVar(&options.csvPath, "csv", "", "CSV 报告输出路径 (file,loc)")
	flags.StringVar(&options.format, "format", options.format, "输出格式: table 或 json")
	flags.StringVar(&options.output, "output", "", "json 导出文件路径")
	flags.StringArrayVar(&options.includeDirs, "include-dir", nil, "额外的头文件搜索目录，必须位于根目录内，可重复")
	flags.StringArrayVar(&options.excludes, "exclude", nil, "建索引时跳过的 glob 模式（相对根目录），可重复")
	flags.BoolVar(&options.gitignore, "gitignore", false, "建索引时遵循根目录下的 .gitignore")

	return countCmd
}

// mergeConfig 用配置文件和环境变量填充未在命令行显式给出的参数。
func (o *countOptions) mergeConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("exts") && len(cfg.Extensions) > 0 {
		o.extensions = cfg.Extensions
	}
	if !flags.Changed("include-blanks") {
		o.includeBlanks = cfg.IncludeBlanks
	}
	if !flags.Changed("exclude") && len(cfg.Excludes) > 0 {
		o.excludes = cfg.Excludes
	}
	if !flags.Changed("include-dir") && len(cfg.IncludeDirs) > 0 {
		o.includeDirs = cfg.IncludeDirs
	}
	if !flags.Changed("gitignore") {
		o.gitignore = cfg.Gitignore
	}
}

func runCount(stdout io.Writer, stderr io.Writer, start string, format string, options countOptions, extensions *fileindex.ExtensionSet, logger logrus.FieldLogger) error {
	startPath, err := filepath.Abs(start)
	if err != nil {
		return errors.WithStackTrace(err)
	}

	root := options.root
	if root == "" {
		root = defaultRoot(startPath)
	}

	result, err := closure.Discover(startPath, root, closure.Options{
		Extensions:  extensions,
		Excludes:    options.excludes,
		Gitignore:   options.gitignore,
		IncludeDirs: options.includeDirs,
		Logger:      logger,
	})
	if err != nil {
		return discoverError(err)
	}

	if options.listOnly {
		return report.PrintListing(stdout, result.Files)
	}

	built := report.Build(result.Files, !options.includeBlanks, logger)
	built.Root = result.Root
	built.Seed = result.Seed
	built.Warnings = append(result.Warnings, built.Warnings...)

	// json 模式下 stdout 只有 JSON，其余提示改写到 stderr。
	notices := stdout
	switch format {
	case "json":
		notices = stderr
		if err := report.PrintJSON(stdout, built); err != nil {
			return errors.WithStackTrace(err)
		}
		if output := strings.TrimSpace(options.output); output != "" {
			writeJSON(notices, output, built, logger)
		}
	default:
		if err := report.PrintListing(stdout, result.Files); err != nil {
			return errors.WithStackTrace(err)
		}
		if err := report.PrintTable(stdout, built); err != nil {
			return errors.WithStackTrace(err)
		}
	}

	if csvPath := strings.TrimSpace(options.csvPath); csvPath != "" {
		writeCSV(notices, csvPath, built, logger)
	}
	return nil
}

// defaultRoot 返回起始文件所在目录的上一级；已经到达文件系统根时退回起始目录本身。
func defaultRoot(startPath string) string {
	startDir := filepath.Dir(startPath)
	parentDir := filepath.Dir(startDir)
	if parentDir == startDir {
		return startDir
	}
	return parentDir
}

// discoverError 给起始文件相关的错误挂上退出码。
func discoverError(err error) error {
	var notFound *closure.SeedNotFoundError
	var outside *closure.SeedOutsideRootError
	var unrecognized *closure.UnrecognizedSeedError

	switch {
	case errors.As(err, &notFound):
		return errors.WithExitCode(err, errors.ExitCodeGeneric)
	case errors.As(err, &outside), errors.As(err, &unrecognized):
		return errors.WithExitCode(err, errors.ExitCodeUsage)
	default:
		return errors.WithStackTrace(err)
	}
}

// 导出失败只记警告，不影响退出码。
func writeCSV(notices io.Writer, path string, built model.Report, logger logrus.FieldLogger) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		absolutePath = path
	}
	if err := report.WriteCSVFile(absolutePath, built); err != nil {
		logger.Warnf("failed to write CSV: %v", err)
		return
	}
	_, _ = fmt.Fprintf(notices, "\nCSV written to: %s\n", absolutePath)
}

func writeJSON(notices io.Writer, path string, built model.Report, logger logrus.FieldLogger) {
	if err := report.WriteJSONFile(path, built); err != nil {
		logger.Warnf("failed to write JSON: %v", err)
		return
	}
	_, _ = fmt.Fprintf(notices, "\nJSON exported to %s\n", path)
}
