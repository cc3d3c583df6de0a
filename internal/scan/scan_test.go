package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/regdoc/internal/config"
	"github.com/kamusis/regdoc/internal/registry"
)

const debounceSrc = `import { useState, useEffect } from "react";
import { isBrowser } from "@/utils/isBrowser";

/**
 * Delays updating a value until a specified time has passed.
 * Useful for reducing the frequency of expensive operations.
 *
 * @param {T} value The value to be debounced.
 * @returns {T} The debounced value.
 */
export function useDebounce<T>(value: T, delay: number): T {
  return value;
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newProject(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hooks", "useDebounce.ts"), debounceSrc)
	writeFile(t, filepath.Join(root, "hooks", "useLocalStorage.tsx"), "export const useLocalStorage = () => null;\n")
	writeFile(t, filepath.Join(root, "hooks", "useThrottle.js"), "/** Throttle. */\n")
	writeFile(t, filepath.Join(root, "hooks", "README.md"), "# hooks\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "hooks", "nested.ts"), 0o755))
	writeFile(t, filepath.Join(root, "utils", "isBrowser.ts"), "/**\n * Checks whether code runs in a browser.\n */\nexport const isBrowser = () => typeof window !== 'undefined';\n")

	cfg, err := config.Load(root, "")
	require.NoError(t, err)
	return cfg
}

func TestBuild_Completeness(t *testing.T) {
	cfg := newProject(t)

	idx, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"useDebounce", "useLocalStorage"}, idx.Hooks.Names())
	assert.Equal(t, []string{"isBrowser"}, idx.Utils.Names())
	assert.Equal(t, "./schema.json", idx.Schema)

	e, ok := idx.Lookup(registry.CategoryHooks, "useDebounce")
	require.True(t, ok)
	assert.Equal(t, "Delays updating a value until a specified time has passed.", e.Description)
	assert.Equal(t, "Hooks", e.Category)
	assert.Equal(t, "1.0.0", e.Version)
	assert.Equal(t, []registry.FileRef{{Type: registry.KindHook, Path: "hooks/useDebounce.ts", Target: "hooks/useDebounce.ts"}}, e.Files)
	assert.Equal(t, []string{}, e.Dependencies)
	assert.Equal(t, []string{"utils/isBrowser"}, e.InternalDependencies)

	u, ok := idx.Lookup(registry.CategoryUtils, "isBrowser")
	require.True(t, ok)
	assert.Empty(t, u.Category)
	assert.Equal(t, "Checks whether code runs in a browser.", u.Description)
}

func TestBuild_FallbackDescription(t *testing.T) {
	cfg := newProject(t)
	writeFile(t, filepath.Join(cfg.UtilsPath(), "formatDate.ts"), "// formats a date\nexport const formatDate = () => '';\n")

	idx, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)

	h, _ := idx.Lookup(registry.CategoryHooks, "useLocalStorage")
	assert.Equal(t, "Hook useLocalStorage", h.Description)
	u, _ := idx.Lookup(registry.CategoryUtils, "formatDate")
	assert.Equal(t, "Utility formatDate", u.Description)
}

func TestBuild_MissingDirectories(t *testing.T) {
	cfg, err := config.Load(t.TempDir(), "")
	require.NoError(t, err)

	idx, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestBuild_SkipsUnreadableFile(t *testing.T) {
	cfg := newProject(t)
	require.NoError(t, os.Symlink(filepath.Join(cfg.SourceRoot, "nowhere.ts"), filepath.Join(cfg.UtilsPath(), "broken.ts")))

	idx, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	_, ok := idx.Lookup(registry.CategoryUtils, "broken")
	assert.False(t, ok)
	assert.Equal(t, 1, idx.Utils.Len())
}

func TestBuild_Cancelled(t *testing.T) {
	cfg := newProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, cfg, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_Idempotent(t *testing.T) {
	cfg := newProject(t)

	_, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.IndexPath)
	require.NoError(t, err)

	_, err = Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.IndexPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))

	loaded, err := registry.Load(cfg.IndexPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"useDebounce", "useLocalStorage"}, loaded.Hooks.Names())
}

func TestRun_OverwritesStaleIndex(t *testing.T) {
	cfg := newProject(t)
	writeFile(t, cfg.IndexPath, `{"hooks": {"gone": {"name": "gone"}}}`)

	idx, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	_, ok := idx.Lookup(registry.CategoryHooks, "gone")
	assert.False(t, ok)

	loaded, err := registry.Load(cfg.IndexPath)
	require.NoError(t, err)
	_, ok = loaded.Lookup(registry.CategoryHooks, "gone")
	assert.False(t, ok)
}

func TestRun_DedupeFromConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "hooks", "useBoth.ts"),
		"import { isBrowser } from \"@/utils/isBrowser\";\n"+
			"import { cn } from \"@/utils/cn\";\n"+
			"import { isBrowser as again } from \"@/utils/isBrowser\";\n")

	keep, err := config.Load(root, "")
	require.NoError(t, err)
	idx, err := Build(context.Background(), keep, nil)
	require.NoError(t, err)
	e, _ := idx.Lookup(registry.CategoryHooks, "useBoth")
	assert.Equal(t, []string{"utils/isBrowser", "utils/cn", "utils/isBrowser"}, e.InternalDependencies)

	writeFile(t, config.Path(root), "dedupe_dependencies: true\n")
	cfg, err := config.Load(root, "")
	require.NoError(t, err)
	require.True(t, cfg.DedupeDependencies)

	_, err = Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	written, err := registry.Load(cfg.IndexPath)
	require.NoError(t, err)
	e, ok := written.Lookup(registry.CategoryHooks, "useBoth")
	require.True(t, ok)
	assert.Equal(t, []string{"utils/isBrowser", "utils/cn"}, e.InternalDependencies)
}
