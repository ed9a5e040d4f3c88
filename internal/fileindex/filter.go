package fileindex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// FilterOptions 配置遍历过滤器。
type FilterOptions struct {
	Root string
	// Excludes 是 doublestar 风格的 glob，匹配相对 root 的路径（正斜杠）或文件名。
	Excludes         []string
	RespectGitignore bool
}

// Filter 决定遍历时跳过哪些目录和文件。
type Filter struct {
	root      string
	patterns  []string
	gitIgnore gitignore.GitIgnore
}

// NewFilter 校验 glob 并按需加载 root 下的 .gitignore。
// 没有任何规则时返回 nil，表示不过滤。
func NewFilter(options FilterOptions) (*Filter, error) {
	for _, pattern := range options.Excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	filter := &Filter{
		root:     options.Root,
		patterns: append([]string(nil), options.Excludes...),
	}

	if options.RespectGitignore {
		filter.gitIgnore = loadIgnoreFile(filepath.Join(options.Root, ".gitignore"), options.Root)
	}

	if len(filter.patterns) == 0 && filter.gitIgnore == nil {
		return nil, nil
	}
	return filter, nil
}

// Skip 判断路径是否应被跳过。
func (f *Filter) Skip(absolutePath string, isDir bool) bool {
	relativePath, err := filepath.Rel(f.root, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	if f.gitIgnore != nil {
		match := f.gitIgnore.Relative(relativePath, isDir)
		if match != nil && match.Ignore() {
			return true
		}
	}

	baseName := filepath.Base(absolutePath)
	for _, pattern := range f.patterns {
		if matched, _ := doublestar.Match(pattern, relativePath); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, baseName); matched {
			return true
		}
	}
	return false
}

// loadIgnoreFile 读取 ignore 文件；文件不存在时返回 nil。
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
