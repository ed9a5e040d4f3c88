package include

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"ccloc/internal/fileindex"
	"ccloc/internal/fsutil"
	"ccloc/internal/log"
)

// Request 是一次解析请求：在 IncludingFile 中出现的原始目标 Token。
type Request struct {
	IncludingFile string
	Token         string
}

// Strategy 是一种解析策略。返回 false 表示本策略无法解析，交给下一个策略。
type Strategy interface {
	Name() string
	Resolve(request Request) (string, bool)
}

// Resolver 按顺序尝试各个策略，第一个成功的结果生效。
type Resolver struct {
	strategies []Strategy
	logger     logrus.FieldLogger
}

// NewResolver 用给定策略列表创建解析器。
func NewResolver(logger logrus.FieldLogger, strategies ...Strategy) *Resolver {
	if logger == nil {
		logger = log.Discard()
	}
	return &Resolver{
		strategies: strategies,
		logger:     logger,
	}
}

// DefaultStrategies 返回默认策略顺序：相对路径、显式 include 目录、文件名回退。
func DefaultStrategies(guard *fsutil.RootGuard, index *fileindex.Index, includeDirs []string) []Strategy {
	strategies := []Strategy{RelativeStrategy{Guard: guard}}
	if len(includeDirs) > 0 {
		strategies = append(strategies, IncludeDirStrategy{Guard: guard, Dirs: includeDirs})
	}
	return append(strategies, BasenameStrategy{Guard: guard, Index: index})
}

// Resolve 把 includingFile 中的 token 解析为根目录内的路径。
func (r *Resolver) Resolve(includingFile string, token string) (string, bool) {
	request := Request{IncludingFile: includingFile, Token: token}

	for _, strategy := range r.strategies {
		if resolved, ok := strategy.Resolve(request); ok {
			r.logger.WithFields(logrus.Fields{
				"from":     includingFile,
				"token":    token,
				"strategy": strategy.Name(),
			}).Debugf("resolved include to %s", resolved)
			return resolved, true
		}
	}

	r.logger.WithFields(logrus.Fields{
		"from":  includingFile,
		"token": token,
	}).Debug("unresolved include, assuming system header")
	return "", false
}

// RelativeStrategy 处理带路径分隔符的目标：相对于包含者所在目录解析。
type RelativeStrategy struct {
	Guard *fsutil.RootGuard
}

// Name 返回策略名称。
func (s RelativeStrategy) Name() string {
	return "relative"
}

// Resolve 成功时返回真实路径。
func (s RelativeStrategy) Resolve(request Request) (string, bool) {
	token := normalizeToken(request.Token)
	if !strings.Contains(token, "/") {
		return "", false
	}

	candidate := filepath.Join(filepath.Dir(request.IncludingFile), filepath.FromSlash(token))
	return s.Guard.ContainsFile(candidate)
}

// IncludeDirStrategy 依次在显式给定的 include 目录下查找目标。
type IncludeDirStrategy struct {
	Guard *fsutil.RootGuard
	Dirs  []string
}

// Name 返回策略名称。
func (s IncludeDirStrategy) Name() string {
	return "include-dir"
}

// Resolve 成功时返回真实路径。
func (s IncludeDirStrategy) Resolve(request Request) (string, bool) {
	token := filepath.FromSlash(normalizeToken(request.Token))
	for _, dir := range s.Dirs {
		if resolved, ok := s.Guard.ContainsFile(filepath.Join(dir, token)); ok {
			return resolved, true
		}
	}
	return "", false
}

// BasenameStrategy 用目标的文件名查索引中的首选路径。
type BasenameStrategy struct {
	Guard *fsutil.RootGuard
	Index *fileindex.Index
}

// Name 返回策略名称。
func (s BasenameStrategy) Name() string {
	return "basename"
}

// Resolve 成功时返回索引中记录的路径（不做真实路径替换）。
func (s BasenameStrategy) Resolve(request Request) (string, bool) {
	basename := path.Base(normalizeToken(request.Token))
	preferred, ok := s.Index.Lookup(basename)
	if !ok {
		return "", false
	}
	if _, inside := s.Guard.Contains(preferred); !inside {
		return "", false
	}
	return preferred, true
}

// normalizeToken 把反斜杠统一为正斜杠。
func normalizeToken(token string) string {
	return strings.ReplaceAll(token, "\\", "/")
}
