// Package model 定义 ccloc 的核心数据模型。
// 这些结构会被统计层、输出层和命令层共同使用。
package model

// LineMetrics 表示一组行级统计值。
//
// 注意：
// - Total 表示总行数（每行计 1）
// - 每一行只会落入 Code/Comment/Blank 其中之一，不会重复计数
// - 块注释开始行到结束行（含两端）整行都算 Comment，哪怕行内还有代码
type LineMetrics struct {
	Total   int64 `json:"total"`
	Code    int64 `json:"code"`
	Comment int64 `json:"comment"`
	Blank   int64 `json:"blank"`
}

// Add 将另一个统计结果叠加到当前对象。
func (m *LineMetrics) Add(other LineMetrics) {
	m.Total += other.Total
	m.Code += other.Code
	m.Comment += other.Comment
	m.Blank += other.Blank
}

// LOC 返回“非注释行”数量。excludeBlank 为 true 时空白行不计入。
func (m LineMetrics) LOC(excludeBlank bool) int64 {
	if excludeBlank {
		return m.Code
	}
	return m.Code + m.Blank
}

// FileReport 表示单文件统计结果，顺序与发现顺序一致。
type FileReport struct {
	Path    string      `json:"path"`
	LOC     int64       `json:"loc"`
	Metrics LineMetrics `json:"metrics"`
}

// Warning 记录不阻断流程的问题（文件读不了、导出失败等）。
type Warning struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report 是 count 命令的完整输出模型。
type Report struct {
	Root         string       `json:"root"`
	Seed         string       `json:"seed"`
	ExcludeBlank bool         `json:"exclude_blank"`
	Files        []FileReport `json:"files"`
	Total        int64        `json:"total"`
	Metrics      LineMetrics  `json:"metrics"`
	Warnings     []Warning    `json:"warnings"`
}

// Paths 返回按发现顺序排列的文件路径。
func (r Report) Paths() []string {
	paths := make([]string, 0, len(r.Files))
	for _, item := range r.Files {
		paths = append(paths, item.Path)
	}
	return paths
}
