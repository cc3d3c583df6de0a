package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, root, cfg.SourceRoot)
	assert.Equal(t, filepath.Join(root, "index.json"), cfg.IndexPath)
	assert.Equal(t, filepath.Join(root, "docs"), cfg.DocsRoot)
	assert.Equal(t, filepath.Join(root, "hooks"), cfg.HooksPath())
	assert.Equal(t, filepath.Join(root, "utils"), cfg.UtilsPath())
	assert.Equal(t, []string{".ts", ".tsx"}, cfg.Extensions)
	assert.False(t, cfg.DedupeDependencies)
	assert.Equal(t, "1.0.0", cfg.EntryVersion)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	root := t.TempDir()
	body := "" +
		"docs_root: site/content\n" +
		"index_path: /tmp/elsewhere/registry.json\n" +
		"extensions: [ts, .js]\n" +
		"dedupe_dependencies: true\n" +
		"install_command: pnpm dlx kit add\n"
	require.NoError(t, os.WriteFile(Path(root), []byte(body), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "site", "content"), cfg.DocsRoot)
	assert.Equal(t, "/tmp/elsewhere/registry.json", cfg.IndexPath)
	assert.Equal(t, []string{".ts", ".js"}, cfg.Extensions)
	assert.True(t, cfg.DedupeDependencies)
	assert.Equal(t, "pnpm dlx kit add", cfg.InstallCommand)
	assert.Equal(t, "Hooks", cfg.HookCategory, "unset fields keep their default")
}

func TestLoad_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(Path(root), []byte("docs_root: [unclosed\n"), 0o644))

	_, err := Load(root, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestSave_RoundTrip(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.DocsRoot = "out"
	require.NoError(t, Save(Path(root), cfg))

	loaded, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "out"), loaded.DocsRoot)
}

func TestLoadDotEnv_NotExist(t *testing.T) {
	m, err := LoadDotEnv(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestGetConfigValue_EnvOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(DotEnvPath(dir), []byte("K=fromdotenv\nJ=only\n"), 0o600))
	t.Setenv("K", "fromenv")

	v, err := GetConfigValue(dir, "K")
	require.NoError(t, err)
	assert.Equal(t, "fromenv", v)

	v, err = GetConfigValue(dir, "J")
	require.NoError(t, err)
	assert.Equal(t, "only", v)
}

func TestResolveRoot_FlagWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(RootEnvKey, "/should/not/be/used")

	got, err := ResolveRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolveRoot_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(RootEnvKey, dir)

	got, err := ResolveRoot("")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestEnsureDotEnvTemplate_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	p := DotEnvPath(dir)
	require.NoError(t, os.WriteFile(p, []byte("REGDOC_ROOT=keep\n"), 0o600))

	written, err := EnsureDotEnvTemplate(dir)
	require.NoError(t, err)
	assert.False(t, written)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "REGDOC_ROOT=keep\n", string(b))
}

func TestEnsureDotEnvTemplate_CreatesWhenMissing(t *testing.T) {
	dir := t.TempDir()

	written, err := EnsureDotEnvTemplate(dir)
	require.NoError(t, err)
	assert.True(t, written)

	m, err := LoadDotEnv(dir)
	require.NoError(t, err)
	v, ok := m[RootEnvKey]
	assert.True(t, ok)
	assert.Empty(t, v)
}
