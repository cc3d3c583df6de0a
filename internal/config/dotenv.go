package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// RootEnvKey names the variable that points regdoc at a project root.
const RootEnvKey = "REGDOC_ROOT"

// DotEnvPath returns the path of the .env file inside dir.
func DotEnvPath(dir string) string {
	return filepath.Join(dir, ".env")
}

// LoadDotEnv reads dir/.env and returns its key/value pairs.
// A missing file yields an empty map.
func LoadDotEnv(dir string) (map[string]string, error) {
	p := DotEnvPath(dir)
	m, err := godotenv.Read(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return m, nil
}

// GetConfigValue returns the effective value for key, using process environment
// variables first and falling back to dir/.env.
func GetConfigValue(dir, key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	dotenv, err := LoadDotEnv(dir)
	if err != nil {
		return "", err
	}
	return dotenv[key], nil
}

// ResolveRoot picks the project root: the explicit flag value, then REGDOC_ROOT
// (environment, then ./.env), then the working directory.
func ResolveRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return expandAbs(flagValue)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine working directory: %w", err)
	}
	v, err := GetConfigValue(wd, RootEnvKey)
	if err != nil {
		return "", err
	}
	if v == "" {
		return wd, nil
	}
	if !filepath.IsAbs(v) {
		v = filepath.Join(wd, v)
	}
	return expandAbs(v)
}

func expandAbs(p string) (string, error) {
	p, err := ExpandPath(p)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", p, err)
	}
	return abs, nil
}

// EnsureDotEnvTemplate creates dir/.env if it does not already exist.
// It reports whether a file was written.
func EnsureDotEnvTemplate(dir string) (bool, error) {
	p := DotEnvPath(dir)
	if _, err := os.Stat(p); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}

	if err := godotenv.Write(map[string]string{RootEnvKey: ""}, p); err != nil {
		return false, fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return true, nil
}
