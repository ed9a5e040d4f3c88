package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ccloc/internal/errors"
	"ccloc/internal/fileindex"
)

// dupesOptions 存放 dupes 命令的参数。
type dupesOptions struct {
	extensions []string
	excludes   []string
	gitignore  bool
}

// newDupesCmd 创建 dupes 子命令。
// 列出根目录内同名的代码文件：闭包按文件名去重，这些文件中只有第一个会被统计。
func newDupesCmd(global *globalOptions) *cobra.Command {
	options := dupesOptions{}

	dupesCmd := &cobra.Command{
		Use:   "dupes [root]",
		Short: "列出根目录内同名的代码文件",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(cmd, global)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("exts") && len(cfg.Extensions) > 0 {
				options.extensions = cfg.Extensions
			}
			if !flags.Changed("exclude") && len(cfg.Excludes) > 0 {
				options.excludes = cfg.Excludes
			}
			if !flags.Changed("gitignore") {
				options.gitignore = cfg.Gitignore
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			root, err = filepath.Abs(root)
			if err != nil {
				return errors.WithStackTrace(err)
			}

			filter, err := fileindex.NewFilter(fileindex.FilterOptions{
				Root:             root,
				Excludes:         options.excludes,
				RespectGitignore: options.gitignore,
			})
			if err != nil {
				return errors.WithExitCode(err, errors.ExitCodeUsage)
			}

			index, err := fileindex.Build(root, fileindex.Options{
				Extensions: fileindex.NewExtensionSet(options.extensions),
				Filter:     filter,
				Logger:     logger,
			})
			if err != nil {
				return errors.WithStackTrace(err)
			}

			out := cmd.OutOrStdout()
			duplicates := index.Duplicates()
			if len(duplicates) == 0 {
				_, err := fmt.Fprintln(out, "# No duplicate basenames found.")
				return err
			}

			if _, err := fmt.Fprintf(out, "# Duplicate basenames (%d), first path is the one counted:\n", len(duplicates)); err != nil {
				return err
			}
			for _, item := range duplicates {
				if _, err := fmt.Fprintf(out, "%s\n  %s\n", item.Basename, strings.Join(item.Paths, "\n  ")); err != nil {
					return err
				}
			}
			return nil
		},
	}

	flags := dupesCmd.Flags()
	flags.StringSliceVar(&options.extensions, "exts", nil, "视为代码文件的后缀")
	flags.StringArrayVar(&options.excludes, "exclude", nil, "建索引时跳过的 glob 模式，可重复")
	flags.BoolVar(&options.gitignore, "gitignore", false, "建索引时遵循根目录下的 .gitignore")

	return dupesCmd
}
