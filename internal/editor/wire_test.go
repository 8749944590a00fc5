package editor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-report-author/internal/config"
	"github.com/a3tai/mcp-report-author/internal/render"
)

func TestFromConfig_PublishesToDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DraftDirectory = filepath.Join(dir, "drafts")
	cfg.OutputDirectory = filepath.Join(dir, "out")
	cfg.PublishDirectory = filepath.Join(dir, "published")
	cfg.CodePrefix = "ACME"
	require.NoError(t, cfg.Validate())

	svc, err := FromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, svc.Sinks(), 1)
	assert.Equal(t, "ACME", svc.CodePrefix())

	session, err := SessionFromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, session.Toggles.Publish)
	assert.True(t, session.Toggles.Autosave)

	code, err := svc.GenerateCode(context.Background(), session, "")
	require.NoError(t, err)
	assert.Equal(t, "ACME001", code)

	result, err := svc.Export(context.Background(), session, []render.Format{render.FormatMarkdown})
	require.NoError(t, err)
	assert.Empty(t, result.Notices)
	require.Len(t, result.Uploads, 2)
	assert.Equal(t, "file://"+filepath.ToSlash(filepath.Join(cfg.PublishDirectory, "ACME001.md")), result.Uploads[1].URL)

	for _, path := range []string{
		filepath.Join(cfg.DraftDirectory, "ACME001.json"),
		filepath.Join(cfg.DraftDirectory, "counter.json"),
		filepath.Join(cfg.OutputDirectory, "ACME001.md"),
		filepath.Join(cfg.PublishDirectory, "ACME001.json"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
}

func TestSessionFromConfig_LogoErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogoPath = filepath.Join(t.TempDir(), "missing.png")

	_, err := SessionFromConfig(cfg)
	assert.Error(t, err)
}
