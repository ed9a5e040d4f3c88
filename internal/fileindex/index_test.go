package fileindex

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuild_RegistersCodeFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.cpp"), "int main() {}\n")
	writeFile(t, filepath.Join(root, "inc", "a.H"), "")
	writeFile(t, filepath.Join(root, "README.md"), "# docs\n")
	writeFile(t, filepath.Join(root, "tpl", "vec.c++"), "")

	idx, err := Build(root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"main.cpp", "a.H", "vec.c++"}, idx.Basenames())

	path, ok := idx.Lookup("a.H")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "inc", "a.H"), path)

	_, ok = idx.Lookup("README.md")
	assert.False(t, ok)
}

func TestBuild_FilesBeforeSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "util.h"), "")
	writeFile(t, filepath.Join(root, "util.h"), "")

	idx, err := Build(root, Options{})
	require.NoError(t, err)

	path, ok := idx.Lookup("util.h")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "util.h"), path)
	assert.Equal(t, []string{
		filepath.Join(root, "util.h"),
		filepath.Join(root, "a", "util.h"),
	}, idx.AllPaths("util.h"))
}

func TestBuild_InjectedOrderDecidesDuplicateWinner(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alpha", "util.h"), "")
	writeFile(t, filepath.Join(root, "beta", "util.h"), "")

	byName, err := Build(root, Options{})
	require.NoError(t, err)
	path, _ := byName.Lookup("util.h")
	assert.Equal(t, filepath.Join(root, "alpha", "util.h"), path)

	reverse := func(entries []fs.DirEntry) {
		sort.SliceStable(entries, func(i int, j int) bool {
			return entries[i].Name() > entries[j].Name()
		})
	}
	reversed, err := Build(root, Options{Order: reverse})
	require.NoError(t, err)
	path, _ = reversed.Lookup("util.h")
	assert.Equal(t, filepath.Join(root, "beta", "util.h"), path)

	dups := reversed.Duplicates()
	require.Len(t, dups, 1)
	assert.Equal(t, "util.h", dups[0].Basename)
	assert.Equal(t, filepath.Join(root, "beta", "util.h"), dups[0].Paths[0])
}

func TestBuild_Idempotent(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"z.h", "m/a.h", "m/n/b.hpp", "c/a.h", "c/d.cc"} {
		writeFile(t, filepath.Join(root, rel), "")
	}

	first, err := Build(root, Options{})
	require.NoError(t, err)
	second, err := Build(root, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Basenames(), second.Basenames())
	assert.Equal(t, first.AllPaths("a.h"), second.AllPaths("a.h"))
}

func TestBuild_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x.cu"), "")
	writeFile(t, filepath.Join(root, "y.h"), "")

	idx, err := Build(root, Options{Extensions: NewExtensionSet([]string{"CU"})})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.cu"}, idx.Basenames())
}

func TestBuild_RootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a.h")
	writeFile(t, file, "")

	_, err := Build(file, Options{})
	require.Error(t, err)

	_, err = Build(filepath.Join(root, "missing"), Options{})
	require.Error(t, err)
}

func TestRegister(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.h"), "")

	idx, err := Build(root, Options{})
	require.NoError(t, err)

	assert.False(t, idx.Register(filepath.Join(root, "other", "a.h")))
	assert.True(t, idx.Register(filepath.Join(root, "seed.txt")))
	assert.Equal(t, 2, idx.Len())
}

func TestFilter_ExcludesAndGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "gen/\n")
	writeFile(t, filepath.Join(root, "gen", "util.h"), "")
	writeFile(t, filepath.Join(root, "third_party", "zlib.h"), "")
	writeFile(t, filepath.Join(root, "src", "util.h"), "")
	writeFile(t, filepath.Join(root, "src", "impl.inl"), "")

	filter, err := NewFilter(FilterOptions{
		Root:             root,
		Excludes:         []string{"third_party", "**/*.inl"},
		RespectGitignore: true,
	})
	require.NoError(t, err)
	require.NotNil(t, filter)

	idx, err := Build(root, Options{Filter: filter})
	require.NoError(t, err)

	assert.Equal(t, []string{"util.h"}, idx.Basenames())
	path, _ := idx.Lookup("util.h")
	assert.Equal(t, filepath.Join(root, "src", "util.h"), path)
}

func TestNewFilter(t *testing.T) {
	filter, err := NewFilter(FilterOptions{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Nil(t, filter)

	_, err = NewFilter(FilterOptions{Root: t.TempDir(), Excludes: []string{"[unclosed"}})
	require.Error(t, err)
}

func TestExtensionSet(t *testing.T) {
	set := NewExtensionSet([]string{"H", ".cpp", "h", " "})

	assert.Equal(t, []string{".cpp", ".h"}, set.Extensions())
	assert.True(t, set.Matches("/x/Foo.CPP"))
	assert.False(t, set.Matches("/x/foo.c"))

	defaults := NewExtensionSet(nil)
	assert.Len(t, defaults.Extensions(), len(DefaultExtensions))
	assert.True(t, defaults.Matches("iter.IPP"))
}
