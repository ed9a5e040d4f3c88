// Package lines 实现 C/C++ 的行级注释判定状态机。
//
// 与逐字符的词法分析不同，这里按“整行”分类：
// 块注释从 /* 所在行到 */ 所在行（含两端）整行都是注释行，
// 以 // 开头的行是注释行，其余行是非注释行。
// 字符串或字符字面量里的 /* 和 // 同样会被当作注释起点。
package lines

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"ccloc/internal/model"
)

// blockState 是跨行传递的 FSM 状态，只有两种取值。
type blockState int

const (
	stateNormal blockState = iota
	stateInBlock
)

// lineKind 是单行的分类结果。
type lineKind int

const (
	kindCode lineKind = iota
	kindComment
	kindBlank
)

// Analyze 使用两态 FSM 对内容进行流式扫描，返回完整的行级统计。
func Analyze(reader io.Reader) (model.LineMetrics, error) {
	var metrics model.LineMetrics

	// 按行流式读取，避免大文件造成内存压力。
	bufferedReader := bufio.NewReader(reader)
	state := stateNormal

	for {
		line, err := bufferedReader.ReadString('\n')
		// 没有残留字符的 EOF 说明读取完成。
		if errors.Is(err, io.EOF) && len(line) == 0 {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return metrics, err
		}

		var kind lineKind
		kind, state = classifyLine(state, normalizeLine(line))
		applyLineKind(&metrics, kind)

		// 最后一行即使没有换行，也已完成统计。
		if errors.Is(err, io.EOF) {
			break
		}
	}

	return metrics, nil
}

// Count 返回非注释行数量。excludeBlank 为 true 时空白行不计入。
func Count(reader io.Reader, excludeBlank bool) (int64, error) {
	metrics, err := Analyze(reader)
	if err != nil {
		return 0, err
	}
	return metrics.LOC(excludeBlank), nil
}

// AnalyzeFile 打开文件并统计，文件句柄在返回前关闭。
func AnalyzeFile(path string) (model.LineMetrics, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.LineMetrics{}, err
	}

	metrics, analyzeErr := Analyze(file)
	closeErr := file.Close()

	if analyzeErr != nil {
		return model.LineMetrics{}, fmt.Errorf("read %s: %w", path, analyzeErr)
	}
	if closeErr != nil {
		return model.LineMetrics{}, closeErr
	}
	return metrics, nil
}

// CountFile 是 AnalyzeFile 的便捷封装，只返回非注释行数量。
func CountFile(path string, excludeBlank bool) (int64, error) {
	metrics, err := AnalyzeFile(path)
	if err != nil {
		return 0, err
	}
	return metrics.LOC(excludeBlank), nil
}

// classifyLine 根据当前状态判定一行，并返回下一行使用的状态。
func classifyLine(state blockState, line string) (lineKind, blockState) {
	stripped := strings.TrimLeftFunc(line, unicode.IsSpace)

	switch state {
	case stateInBlock:
		// 块注释内的行整体是注释，遇到 */ 后下一行回到正常状态。
		if strings.Contains(stripped, "*/") {
			return kindComment, stateNormal
		}
		return kindComment, stateInBlock

	default:
		if strings.HasPrefix(stripped, "//") {
			return kindComment, stateNormal
		}

		start := strings.Index(stripped, "/*")
		if start != -1 {
			// 只查找第一个 /* 之后的第一个 */；同一行后面再出现的 /* 不再处理。
			if strings.Contains(stripped[start+2:], "*/") {
				return kindComment, stateNormal
			}
			return kindComment, stateInBlock
		}

		if stripped == "" {
			return kindBlank, stateNormal
		}
		return kindCode, stateNormal
	}
}
