// Package closure 从起始文件出发，沿 #include 关系做广度优先遍历，
// 得到根目录内所有可达文件的有序列表。
//
// 去重依据是文件名（basename）而不是路径：同名文件只会出现一次。
package closure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"ccloc/internal/fileindex"
	"ccloc/internal/fsutil"
	"ccloc/internal/include"
	"ccloc/internal/log"
	"ccloc/internal/model"
)

// Options 是 Discover 的可选参数。
type Options struct {
	Extensions  *fileindex.ExtensionSet
	Order       fileindex.EntryOrder
	Excludes    []string
	Gitignore   bool
	IncludeDirs []string
	Logger      logrus.FieldLogger
}

// Result 是一次发现的结果，返回后只读。
type Result struct {
	Root string
	// Seed 是实际作为第一个节点的路径，可能与用户给定的起始文件不同。
	Seed     string
	Files    []string
	Index    *fileindex.Index
	Warnings []model.Warning
}

// Discoverer 在已建好的索引和解析器上执行遍历。
type Discoverer struct {
	Index      *fileindex.Index
	Resolver   *include.Resolver
	Extensions *fileindex.ExtensionSet
	Logger     logrus.FieldLogger
}

// node 是队列中的元素。
type node struct {
	path     string
	basename string
}

// Discover 校验起始文件、建立索引并执行遍历。
func Discover(seed string, root string, options Options) (*Result, error) {
	if options.Logger == nil {
		options.Logger = log.Discard()
	}
	if options.Extensions == nil {
		options.Extensions = fileindex.NewExtensionSet(nil)
	}

	seedPath, err := filepath.Abs(seed)
	if err != nil {
		return nil, fmt.Errorf("resolve start file: %w", err)
	}
	if _, statErr := os.Stat(seedPath); statErr != nil {
		return nil, &SeedNotFoundError{Path: seedPath}
	}

	guard, err := fsutil.NewRootGuard(root)
	if err != nil {
		return nil, err
	}
	if err := ensureWithinRoot(guard, seedPath); err != nil {
		return nil, err
	}

	includeDirs := make([]string, 0, len(options.IncludeDirs))
	for _, dir := range options.IncludeDirs {
		absoluteDir, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, fmt.Errorf("resolve include dir: %w", absErr)
		}
		if _, inside := guard.Contains(absoluteDir); !inside {
			return nil, fmt.Errorf("include dir %s does not exist inside root %s", absoluteDir, guard.Root())
		}
		includeDirs = append(includeDirs, absoluteDir)
	}

	filter, err := fileindex.NewFilter(fileindex.FilterOptions{
		Root:             guard.Root(),
		Excludes:         options.Excludes,
		RespectGitignore: options.Gitignore,
	})
	if err != nil {
		return nil, err
	}

	index, err := fileindex.Build(guard.Root(), fileindex.Options{
		Extensions: options.Extensions,
		Order:      options.Order,
		Filter:     filter,
		Logger:     options.Logger,
	})
	if err != nil {
		return nil, err
	}

	discoverer := &Discoverer{
		Index:      index,
		Resolver:   include.NewResolver(options.Logger, include.DefaultStrategies(guard, index, includeDirs)...),
		Extensions: options.Extensions,
		Logger:     options.Logger,
	}
	return discoverer.Run(seedPath)
}

// Run 从 seed 出发做广度优先遍历。
// 队列中的节点在出队时再检查一次是否已访问，重复入队不会导致重复统计。
func (d *Discoverer) Run(seed string) (*Result, error) {
	logger := d.Logger
	if logger == nil {
		logger = log.Discard()
	}

	seedBase := filepath.Base(seed)
	if _, ok := d.Index.Lookup(seedBase); !ok {
		if !d.Extensions.Matches(seed) {
			return nil, &UnrecognizedSeedError{Path: seed}
		}
		d.Index.Register(seed)
	}

	first, _ := d.Index.Lookup(seedBase)
	if first != seed {
		logger.WithField("seed", seed).Warnf("another file named %s was indexed first, using %s", seedBase, first)
	}

	result := &Result{
		Root:     d.Index.Root(),
		Seed:     first,
		Files:    make([]string, 0),
		Index:    d.Index,
		Warnings: make([]model.Warning, 0),
	}

	visited := make(map[string]struct{})
	queue := []node{{path: first, basename: seedBase}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, seen := visited[current.basename]; seen {
			continue
		}
		visited[current.basename] = struct{}{}
		result.Files = append(result.Files, current.path)

		targets, err := include.ParseFile(current.path)
		if err != nil {
			logger.WithField("path", current.path).Warnf("failed to read includes: %v", err)
			result.Warnings = append(result.Warnings, model.Warning{Path: current.path, Error: err.Error()})
			continue
		}

		for _, target := range targets {
			resolved, ok := d.Resolver.Resolve(current.path, target)
			if !ok {
				continue
			}
			basename := filepath.Base(resolved)
			if _, seen := visited[basename]; !seen {
				queue = append(queue, node{path: resolved, basename: basename})
			}
		}
	}

	return result, nil
}

func ensureWithinRoot(guard *fsutil.RootGuard, seed string) error {
	realSeed, inside := guard.Contains(seed)
	if !inside {
		if realSeed == "" {
			realSeed = seed
		}
		return &SeedOutsideRootError{Path: realSeed, Root: guard.Root()}
	}
	return nil
}
