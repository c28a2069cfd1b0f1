// Package project persists designs, application preferences, templates and
// backups as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/piwi3910/polyhouse/internal/model"
)

// Extension is the file extension of a saved design.
const Extension = ".polyhouse"

// writeJSON stores v as indented JSON, creating parent directories.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// readJSON decodes path over v. A missing file reports found=false and
// leaves v untouched.
func readJSON(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Save writes p to path as indented JSON.
func Save(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	return nil
}

// Load reads a design from path. The configuration is decoded over
// DefaultConfig, so files written by older versions load with every
// missing field defaulted.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	p := model.Project{Config: model.DefaultConfig()}
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", filepath.Base(path), err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// LoadConfig reads a bare configuration JSON document, or the configuration
// of a saved design, from path.
func LoadConfig(path string) (model.PolyhouseConfig, error) {
	if strings.EqualFold(filepath.Ext(path), Extension) {
		p, err := Load(path)
		if err != nil {
			return model.PolyhouseConfig{}, err
		}
		return p.Config, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PolyhouseConfig{}, err
	}
	cfg := model.DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.PolyhouseConfig{}, fmt.Errorf("failed to parse configuration %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName returns a file name for p inside a directory of saved designs.
func FileName(p model.Project) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(p.Name, "-"), "-.")
	if base == "" {
		base = p.ID
	}
	return base + Extension
}

// SaveAll writes every project into dir and returns the written paths.
// Projects whose file names collide are suffixed with their ID.
func SaveAll(dir string, projects []model.Project) ([]string, error) {
	seen := make(map[string]bool, len(projects))
	paths := make([]string, 0, len(projects))
	for _, p := range projects {
		name := FileName(p)
		if seen[name] {
			name = strings.TrimSuffix(name, Extension) + "-" + p.ID + Extension
		}
		seen[name] = true

		path := filepath.Join(dir, name)
		if err := Save(path, p); err != nil {
			return paths, fmt.Errorf("saving %q: %w", p.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
