package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ccloc/internal/fileindex"
)

// newExtensionsCmd 创建 extensions 子命令。
// 命令用于展示当前生效的后缀白名单及其来源（默认、配置文件或环境变量）。
func newExtensionsCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "展示当前生效的 C/C++ 文件后缀",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadSettings(cmd, global)
			if err != nil {
				return err
			}

			source := "default"
			if len(cfg.Extensions) > 0 {
				source = "config"
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if _, err := fmt.Fprintln(writer, "EXTENSION\tSOURCE"); err != nil {
				return err
			}

			for _, ext := range fileindex.NewExtensionSet(cfg.Extensions).Extensions() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\n", ext, source); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
