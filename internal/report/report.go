// Package report 负责逐文件统计并输出结果。
// 当前实现支持控制台表格、JSON（含文件导出）和两列 CSV 导出。
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"ccloc/internal/lines"
	"ccloc/internal/log"
	"ccloc/internal/model"
)

// Build 按发现顺序统计每个文件。读取失败的文件记为 0 行并记录警告。
func Build(files []string, excludeBlank bool, logger logrus.FieldLogger) model.Report {
	if logger == nil {
		logger = log.Discard()
	}

	result := model.Report{
		ExcludeBlank: excludeBlank,
		Files:        make([]model.FileReport, 0, len(files)),
		Warnings:     make([]model.Warning, 0),
	}

	for _, path := range files {
		metrics, err := lines.AnalyzeFile(path)
		if err != nil {
			logger.WithField("path", path).Warnf("failed to read file: %v", err)
			result.Warnings = append(result.Warnings, model.Warning{Path: path, Error: err.Error()})
		}

		loc := metrics.LOC(excludeBlank)
		result.Files = append(result.Files, model.FileReport{
			Path:    path,
			LOC:     loc,
			Metrics: metrics,
		})
		result.Total += loc
		result.Metrics.Add(metrics)
	}

	return result
}

// PrintListing 输出发现的文件列表。
func PrintListing(writer io.Writer, paths []string) error {
	if _, err := fmt.Fprintln(writer, "# Discovered files (deduped by basename, search confined to root):"); err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintln(writer, path); err != nil {
			return err
		}
	}
	return nil
}

// PrintTable 输出逐文件行数和总计。
func PrintTable(writer io.Writer, result model.Report) error {
	suffix := ""
	if result.ExcludeBlank {
		suffix = ", blanks excluded"
	}
	if _, err := fmt.Fprintf(writer, "\n# LOC per file (non-comment lines%s):\n", suffix); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(writer, 8, 4, 2, ' ', tabwriter.AlignRight)
	for _, item := range result.Files {
		if _, err := fmt.Fprintf(tw, "%d\t  %s\n", item.LOC, item.Path); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "\n# TOTAL LOC: %d\n", result.Total); err != nil {
		return err
	}

	if len(result.Warnings) > 0 {
		tw = tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, "\n# WARNINGS\nFILE\tMESSAGE"); err != nil {
			return err
		}
		for _, item := range result.Warnings {
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", item.Path, item.Error); err != nil {
				return err
			}
		}
		return tw.Flush()
	}

	return nil
}

// PrintJSON 把统计结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.Report) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(append(content, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 结果导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result model.Report) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

// WriteCSV 写出两列表格：表头 file,loc，逐文件一行，最后一行 TOTAL,<n>。
func WriteCSV(writer io.Writer, result model.Report) error {
	csvWriter := csv.NewWriter(writer)

	if err := csvWriter.Write([]string{"file", "loc"}); err != nil {
		return err
	}
	for _, item := range result.Files {
		if err := csvWriter.Write([]string{item.Path, strconv.FormatInt(item.LOC, 10)}); err != nil {
			return err
		}
	}
	if err := csvWriter.Write([]string{"TOTAL", strconv.FormatInt(result.Total, 10)}); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteCSVFile 将 CSV 导出到指定路径，必要时创建目录。
func WriteCSVFile(path string, result model.Report) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}

	writeErr := WriteCSV(file, result)
	closeErr := file.Close()
	if writeErr != nil {
		return fmt.Errorf("write csv file: %w", writeErr)
	}
	return closeErr
}

func ensureParentDir(path string) error {
	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}
	return nil
}
