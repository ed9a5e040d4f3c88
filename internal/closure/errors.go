package closure

import "fmt"

// SeedNotFoundError 表示起始文件不存在。
type SeedNotFoundError struct {
	Path string
}

func (err *SeedNotFoundError) Error() string {
	return fmt.Sprintf("start file not found: %s", err.Path)
}

// SeedOutsideRootError 表示起始文件（解析软链接后）不在根目录内。
type SeedOutsideRootError struct {
	Path string
	Root string
}

func (err *SeedOutsideRootError) Error() string {
	return fmt.Sprintf("start file must lie within root: start=%s root=%s", err.Path, err.Root)
}

// UnrecognizedSeedError 表示起始文件后缀不在白名单内，且索引中也没有同名文件。
type UnrecognizedSeedError struct {
	Path string
}

func (err *UnrecognizedSeedError) Error() string {
	return fmt.Sprintf("start file %s does not look like a C/C++ source/header with known extensions", err.Path)
}
