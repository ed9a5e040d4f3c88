// Package fileindex 负责在根目录内做一次性遍历，建立“文件名 -> 路径”索引。
//
// 同名文件（basename 相同）被视为同一个逻辑单元：遍历中先遇到的路径成为首选路径，
// 之后遇到的同名文件只记录在诊断列表里，不参与解析。
// 遍历顺序由 EntryOrder 决定，默认按名称排序，从而保证“先到先得”是确定的。
package fileindex

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"ccloc/internal/log"
)

// EntryOrder 对同一目录下的条目原地排序，决定遍历顺序。
type EntryOrder func(entries []fs.DirEntry)

// ByName 是默认的遍历顺序：按文件名字典序。
func ByName(entries []fs.DirEntry) {
	sort.SliceStable(entries, func(i int, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
}

// Options 是建立索引时的可选参数。
type Options struct {
	Extensions *ExtensionSet
	Order      EntryOrder
	// Filter 为 nil 时遍历全部子目录。
	Filter *Filter
	Logger logrus.FieldLogger
}

// Duplicate 描述一个出现在多个路径下的文件名，Paths[0] 为首选路径。
type Duplicate struct {
	Basename string
	Paths    []string
}

// Index 是遍历结果，建好后只读（除了 Register 对起始文件的补登记）。
type Index struct {
	root      string
	preferred map[string]string
	all       map[string][]string
	names     []string
}

// Build 从 root 开始自顶向下遍历：先登记当前目录的文件，再进入子目录。
// 目录软链接不会被跟随；无法读取的子目录记录警告后跳过。
func Build(root string, options Options) (*Index, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	if options.Extensions == nil {
		options.Extensions = NewExtensionSet(nil)
	}
	if options.Order == nil {
		options.Order = ByName
	}
	if options.Logger == nil {
		options.Logger = log.Discard()
	}

	index := &Index{
		root:      root,
		preferred: make(map[string]string),
		all:       make(map[string][]string),
	}

	walker := &walker{index: index, options: options}
	if err := walker.walkDir(root); err != nil {
		return nil, err
	}
	return index, nil
}

type walker struct {
	index   *Index
	options Options
}

func (w *walker) walkDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if dir == w.index.root {
			return fmt.Errorf("read root: %w", err)
		}
		w.options.Logger.WithField("path", dir).Warnf("skipping unreadable directory: %v", err)
		return nil
	}

	w.options.Order(entries)

	subdirs := make([]string, 0)
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if w.options.Filter != nil && w.options.Filter.Skip(path, true) {
				continue
			}
			subdirs = append(subdirs, path)
			continue
		}

		if !w.options.Extensions.Matches(entry.Name()) {
			continue
		}
		if w.options.Filter != nil && w.options.Filter.Skip(path, false) {
			continue
		}
		w.index.add(entry.Name(), path)
	}

	for _, subdir := range subdirs {
		if err := w.walkDir(subdir); err != nil {
			return err
		}
	}
	return nil
}

func (i *Index) add(basename string, path string) {
	if _, ok := i.preferred[basename]; !ok {
		i.preferred[basename] = path
		i.names = append(i.names, basename)
	}
	i.all[basename] = append(i.all[basename], path)
}

// Register 在 basename 尚未登记时补登记 path，返回是否新增。
// 用于把起始文件放进索引。
func (i *Index) Register(path string) bool {
	basename := filepath.Base(path)
	if _, ok := i.preferred[basename]; ok {
		return false
	}
	i.add(basename, path)
	return true
}

// Root 返回索引对应的根目录。
func (i *Index) Root() string {
	return i.root
}

// Lookup 返回 basename 的首选路径。
func (i *Index) Lookup(basename string) (string, bool) {
	path, ok := i.preferred[basename]
	return path, ok
}

// AllPaths 返回共享 basename 的全部路径（遍历顺序），仅用于诊断。
func (i *Index) AllPaths(basename string) []string {
	return append([]string(nil), i.all[basename]...)
}

// Basenames 按首次发现顺序返回全部文件名。
func (i *Index) Basenames() []string {
	return append([]string(nil), i.names...)
}

// Len 返回不同文件名的数量。
func (i *Index) Len() int {
	return len(i.names)
}

// Duplicates 返回出现在多个路径下的文件名，按首次发现顺序排列。
func (i *Index) Duplicates() []Duplicate {
	result := make([]Duplicate, 0)
	for _, name := range i.names {
		if paths := i.all[name]; len(paths) > 1 {
			result = append(result, Duplicate{
				Basename: name,
				Paths:    append([]string(nil), paths...),
			})
		}
	}
	return result
}
