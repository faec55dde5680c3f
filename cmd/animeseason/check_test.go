package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"animeseason/internal/domain/anime"
	"animeseason/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCatalog(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "2025", "spring")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.json"), []byte(`{"title":"A"}`), 0o644))

	catalog := anime.Catalog{
		"2025": {
			anime.Winter: {},
			anime.Spring: {"A"},
			anime.Summer: {"A", "missing"},
		},
	}

	var out bytes.Buffer
	failed := checkCatalog(context.Background(), &out, source.FileSource{Root: root}, catalog)

	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "2025 winter  empty")
	assert.Contains(t, out.String(), "2025 spring  ok    1")
	assert.Contains(t, out.String(), "2025 summer  FAIL")
	assert.Contains(t, out.String(), "无法加载文件")
}
