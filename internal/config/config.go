package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the optional project configuration file looked up in the project root.
const FileName = "regdoc.yaml"

// Config is the in-memory representation of regdoc.yaml with every path resolved.
// It is built once at process entry and handed to both pipeline stages.
type Config struct {
	SourceRoot         string   `yaml:"source_root,omitempty"`
	IndexPath          string   `yaml:"index_path,omitempty"`
	DocsRoot           string   `yaml:"docs_root,omitempty"`
	HooksDir           string   `yaml:"hooks_dir,omitempty"`
	UtilsDir           string   `yaml:"utils_dir,omitempty"`
	Extensions         []string `yaml:"extensions,omitempty"`
	DedupeDependencies bool     `yaml:"dedupe_dependencies"`
	InstallCommand     string   `yaml:"install_command,omitempty"`
	SchemaRef          string   `yaml:"schema_ref,omitempty"`
	EntryVersion       string   `yaml:"entry_version,omitempty"`
	HookCategory       string   `yaml:"hook_category,omitempty"`
}

// DefaultConfig returns the configuration used when regdoc.yaml is absent.
// Paths are left relative; Resolve anchors them to a project root.
func DefaultConfig() *Config {
	return &Config{
		SourceRoot:     ".",
		IndexPath:      "index.json",
		DocsRoot:       "docs",
		HooksDir:       "hooks",
		UtilsDir:       "utils",
		Extensions:     []string{".ts", ".tsx"},
		InstallCommand: "npx dev-tookit add",
		SchemaRef:      "./schema.json",
		EntryVersion:   "1.0.0",
		HookCategory:   "Hooks",
	}
}

// Path returns the absolute path to regdoc.yaml inside root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// Load reads the config file at path (or root/regdoc.yaml when path is empty),
// fills unset fields with defaults and resolves every path against root.
// A missing file is not an error.
func Load(root, path string) (*Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve project root %s: %w", root, err)
	}
	if path == "" {
		path = Path(absRoot)
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		var fromFile Config
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
		cfg.merge(&fromFile)
	}

	if err := cfg.Resolve(absRoot); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge copies every field that is set in o over c.
func (c *Config) merge(o *Config) {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&c.SourceRoot, o.SourceRoot)
	set(&c.IndexPath, o.IndexPath)
	set(&c.DocsRoot, o.DocsRoot)
	set(&c.HooksDir, o.HooksDir)
	set(&c.UtilsDir, o.UtilsDir)
	set(&c.InstallCommand, o.InstallCommand)
	set(&c.SchemaRef, o.SchemaRef)
	set(&c.EntryVersion, o.EntryVersion)
	set(&c.HookCategory, o.HookCategory)
	if len(o.Extensions) > 0 {
		c.Extensions = o.Extensions
	}
	c.DedupeDependencies = o.DedupeDependencies
}

// Resolve makes SourceRoot, IndexPath and DocsRoot absolute, anchored at root.
// HooksDir and UtilsDir stay relative to SourceRoot since they also form the
// path prefix recorded in the index.
func (c *Config) Resolve(root string) error {
	abs := func(p string) (string, error) {
		p, err := ExpandPath(p)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(p) {
			return filepath.Clean(p), nil
		}
		return filepath.Join(root, p), nil
	}
	var err error
	if c.SourceRoot, err = abs(c.SourceRoot); err != nil {
		return err
	}
	if c.IndexPath, err = abs(c.IndexPath); err != nil {
		return err
	}
	if c.DocsRoot, err = abs(c.DocsRoot); err != nil {
		return err
	}
	for i, ext := range c.Extensions {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	return nil
}

// HooksPath returns the absolute hooks directory.
func (c *Config) HooksPath() string {
	return filepath.Join(c.SourceRoot, c.HooksDir)
}

// UtilsPath returns the absolute utils directory.
func (c *Config) UtilsPath() string {
	return filepath.Join(c.SourceRoot, c.UtilsDir)
}

// LockPath returns the advisory lock file guarding pipeline runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.SourceRoot, ".regdoc.lock")
}

// Save marshals cfg and writes it to path. Existing files are overwritten;
// callers that must not clobber check first.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
