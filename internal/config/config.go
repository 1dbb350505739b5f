// Package config loads optional JSONC files that supply default values for
// command-line flags.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tailscale/hujson"

	"github.com/julianstephens/tasklit/internal/constants"
)

const FileName = "tasklit.jsonc"

var ErrInvalid = errors.New("invalid config file")

// Paths returns the config files consulted, lowest precedence first: the
// user config under $XDG_CONFIG_HOME (or ~/.config) and then the project file
// in workDir.
func Paths(workDir string, env []string) []string {
	var paths []string
	if dir := userConfigDir(env); dir != "" {
		paths = append(paths, filepath.Join(dir, constants.AppName, "config.jsonc"))
	}
	return append(paths, filepath.Join(workDir, FileName))
}

func userConfigDir(env []string) string {
	for _, e := range env {
		if dir, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok && dir != "" {
			return dir
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// Load reads every existing file in paths and merges their top-level keys,
// later files overriding earlier ones. Missing files are skipped. It returns
// the merged values and the files that were read.
func Load(paths ...string) (map[string]any, []string, error) {
	merged := make(map[string]any)
	var loaded []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}
		values, err := parse(data)
		if err != nil {
			return nil, nil, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
		}
		for k, v := range values {
			merged[k] = v
		}
		loaded = append(loaded, path)
	}
	return merged, loaded, nil
}

func parse(data []byte) (map[string]any, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(std, &values); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return values, nil
}

// Resolver merges paths and exposes the result to kong as flag defaults.
func Resolver(paths ...string) (kong.Resolver, error) {
	values, _, err := Load(paths...)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	return kong.JSON(bytes.NewReader(data))
}
