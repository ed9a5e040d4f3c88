// Package fsutil 提供路径相关的辅助能力，主要是“路径是否在根目录内”的判定。
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// realPathCacheSize 是真实路径缓存的容量。
const realPathCacheSize = 4096

// RootGuard 用真实路径（解析软链接和 .. 之后）判断路径是否位于根目录内。
// 同一个头文件会被反复解析，因此真实路径结果放在 LRU 缓存里。
type RootGuard struct {
	root     string
	realRoot string
	cache    *lru.Cache[string, string]
}

// NewRootGuard 为 root 创建判定器，root 必须存在。
func NewRootGuard(root string) (*RootGuard, error) {
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute root: %w", err)
	}

	realRoot, err := filepath.EvalSymlinks(absoluteRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve real root: %w", err)
	}

	cache, err := lru.New[string, string](realPathCacheSize)
	if err != nil {
		return nil, err
	}

	return &RootGuard{
		root:     absoluteRoot,
		realRoot: realRoot,
		cache:    cache,
	}, nil
}

// Root 返回绝对根路径（未解析软链接）。
func (g *RootGuard) Root() string {
	return g.root
}

// RealPath 返回 path 的真实路径；路径不存在时返回错误。
func (g *RootGuard) RealPath(path string) (string, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if cached, ok := g.cache.Get(absolutePath); ok {
		return cached, nil
	}

	realPath, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		return "", err
	}
	g.cache.Add(absolutePath, realPath)
	return realPath, nil
}

// Contains 判断 path 是否存在且其真实路径等于根目录或位于根目录之下。
// 返回值中的 string 是 path 的真实路径。
func (g *RootGuard) Contains(path string) (string, bool) {
	realPath, err := g.RealPath(path)
	if err != nil {
		return "", false
	}
	return realPath, HasPathPrefix(realPath, g.realRoot)
}

// ContainsFile 与 Contains 相同，但额外要求真实路径是普通文件而不是目录。
func (g *RootGuard) ContainsFile(path string) (string, bool) {
	realPath, ok := g.Contains(path)
	if !ok || !FileExists(realPath) {
		return "", false
	}
	return realPath, true
}

// HasPathPrefix 判断 path 是否等于 prefix 或以 prefix 为祖先目录。
// 按路径段比较，因此 /foo/barbaz 不以 /foo/bar 为前缀。
func HasPathPrefix(path string, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)

	if path == prefix {
		return true
	}
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// FileExists 判断路径是否存在且不是目录。
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
