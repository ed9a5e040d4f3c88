// Package config 从项目配置文件和环境变量读取 ccloc 的默认参数。
//
// 优先级从低到高：内置默认值、ccloc.yml、.env、进程环境变量。
// 命令行参数由 cmd 包在此基础上覆盖。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 支持的环境变量名。
const (
	EnvExtensions    = "CCLOC_EXTS"
	EnvExcludes      = "CCLOC_EXCLUDE"
	EnvLogLevel      = "CCLOC_LOG_LEVEL"
	EnvIncludeBlanks = "CCLOC_INCLUDE_BLANKS"
)

// ProjectFiles 是未指定 --config 时依次探测的文件名。
var ProjectFiles = []string{"ccloc.yml", "ccloc.yaml"}

// Config 是可以来自配置文件或环境变量的参数集合。
type Config struct {
	Extensions    []string `yaml:"extensions,omitempty"`
	Excludes      []string `yaml:"excludes,omitempty"`
	IncludeDirs   []string `yaml:"includeDirs,omitempty"`
	IncludeBlanks bool     `yaml:"includeBlanks,omitempty"`
	Gitignore     bool     `yaml:"gitignore,omitempty"`
	LogLevel      string   `yaml:"logLevel,omitempty"`
	// Source 记录实际读取的配置文件，未找到时为空。
	Source string `yaml:"-"`
}

// Load 读取 explicitPath（为空时在 dir 中探测 ProjectFiles），再叠加 <dir>/.env 和进程环境变量。
// 探测不到项目配置文件不算错误，但显式指定的文件不存在会返回错误。
func Load(dir string, explicitPath string) (*Config, error) {
	cfg, err := loadFile(dir, explicitPath)
	if err != nil {
		return nil, err
	}

	dotenv, err := readDotEnv(filepath.Join(dir, ".env"))
	if err != nil {
		return nil, err
	}

	lookup := func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(dir string, explicitPath string) (*Config, error) {
	if explicitPath != "" {
		data, err := os.ReadFile(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return parse(data, explicitPath)
	}

	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return parse(data, path)
	}
	return &Config{}, nil
}

func parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", source, err)
	}
	cfg.Source = source
	return &cfg, nil
}

func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if value, ok := lookup(EnvExtensions); ok && strings.TrimSpace(value) != "" {
		c.Extensions = splitList(value)
	}
	if value, ok := lookup(EnvExcludes); ok && strings.TrimSpace(value) != "" {
		c.Excludes = splitList(value)
	}
	if value, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		c.LogLevel = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvIncludeBlanks); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvIncludeBlanks, value, err)
		}
		c.IncludeBlanks = parsed
	}
	return nil
}

// splitList 按逗号或空白切分列表，丢弃空项。
func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return fields
}
