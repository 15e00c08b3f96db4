package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeinsight/src/config"
	"codeinsight/src/model"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestProviderLoadsSupportedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.js", "const x = 1;\n")
	writeFile(t, root, "lib/util.py", "x = 1\n")
	writeFile(t, root, "notes.txt", "not source\n")

	provider := NewProvider(config.DefaultConfig().Analyzer)
	units, err := provider.Load(root)

	require.NoError(t, err)
	require.Len(t, units, 2)

	paths := []string{units[0].Path, units[1].Path}
	assert.Contains(t, paths, "main.js")
	assert.Contains(t, paths, "lib/util.py")

	for _, unit := range units {
		if unit.Path == "main.js" {
			assert.Equal(t, model.LangJavaScript, unit.Language)
			assert.Equal(t, "const x = 1;\n", unit.Content)
			assert.Equal(t, len(unit.Content), unit.SizeBytes)
		}
	}
}

func TestProviderSkipsExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.js", "const a = 1;\n")
	writeFile(t, root, "node_modules/dep/index.js", "module.exports = {};\n")
	writeFile(t, root, "vendor/lib.py", "x = 1\n")

	provider := NewProvider(config.DefaultConfig().Analyzer)
	units, err := provider.Load(root)

	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "app.js", units[0].Path)
}

func TestProviderHonorsIncludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.js", "const a = 1;\n")
	writeFile(t, root, "tool.py", "x = 1\n")

	cfg := config.DefaultConfig().Analyzer
	cfg.Include = []string{"**/*.py", "*.py"}

	units, err := NewProvider(cfg).Load(root)

	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "tool.py", units[0].Path)
}

func TestProviderSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.js", "const a = 1;\n")
	writeFile(t, root, "big.js", strings.Repeat("const filler = 12345;\n", 20))

	cfg := config.DefaultConfig().Analyzer
	cfg.MaxFileSizeBytes = 100

	units, err := NewProvider(cfg).Load(root)

	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "small.js", units[0].Path)
}

func TestProviderSingleFileRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "single.js", "const a = 1;\n")

	units, err := NewProvider(config.DefaultConfig().Analyzer).Load(filepath.Join(root, "single.js"))

	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "single.js", units[0].Path)
}

func TestProviderMissingRoot(t *testing.T) {
	_, err := NewProvider(config.DefaultConfig().Analyzer).Load(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
