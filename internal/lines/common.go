package lines

import (
	"strings"

	"ccloc/internal/model"
)

// normalizeLine 用于去除每行末尾的换行符。
// 该函数适配 Windows 的 \r\n 与 Unix 的 \n。
func normalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}

// applyLineKind 根据 FSM 输出的分类结果更新统计值。
// 每次调用都默认是“处理完一整行”，因此 Total 固定 +1。
func applyLineKind(metrics *model.LineMetrics, kind lineKind) {
	metrics.Total++

	switch kind {
	case kindComment:
		metrics.Comment++
	case kindBlank:
		metrics.Blank++
	default:
		metrics.Code++
	}
}
