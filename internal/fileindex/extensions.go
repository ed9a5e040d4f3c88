package fileindex

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions 是默认识别的 C/C++ 源文件与头文件后缀。
var DefaultExtensions = []string{
	".c", ".cc", ".cxx", ".cpp", ".c++",
	".h", ".hh", ".hpp", ".hxx", ".inl", ".ipp",
}

// ExtensionSet 管理后缀白名单，匹配时忽略大小写。
type ExtensionSet struct {
	ordered []string
	lookup  map[string]struct{}
}

// NewExtensionSet 根据给定后缀创建白名单。
// 后缀统一转为小写，缺少点号时自动补上；为空时使用 DefaultExtensions。
func NewExtensionSet(extensions []string) *ExtensionSet {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	set := &ExtensionSet{
		lookup: make(map[string]struct{}, len(extensions)),
	}

	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := set.lookup[ext]; ok {
			continue
		}
		set.lookup[ext] = struct{}{}
		set.ordered = append(set.ordered, ext)
	}

	return set
}

// Matches 判断文件后缀是否在白名单内。
func (s *ExtensionSet) Matches(path string) bool {
	_, ok := s.lookup[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions 返回排序后的后缀列表。
func (s *ExtensionSet) Extensions() []string {
	extensions := append([]string(nil), s.ordered...)
	sort.Strings(extensions)
	return extensions
}
