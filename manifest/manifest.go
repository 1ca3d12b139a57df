// Package manifest provides loading and parsing of plugin.yaml manifest files.
// Manifests define plugin identity, declared dependencies, and discovery-time
// settings; discovery surfaces read them to construct plugins for the host.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest represents a plugin.yaml manifest file.
// This is the inbound definition format for a plugin: a unique name, an
// ordered dependency list fixed at definition time, and metadata.
type Manifest struct {
	// Identity
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`

	// Depends lists the names of required plugins, in resolution order.
	Depends []string `yaml:"depends,omitempty"`

	// EnableOnLoad requests that the host enable the plugin, with automatic
	// dependency resolution, at the end of the load pass.
	EnableOnLoad bool `yaml:"enable_on_load,omitempty"`

	// Categorization
	Tags []string `yaml:"tags,omitempty"`

	// Additional metadata
	Author     string `yaml:"author,omitempty"`
	License    string `yaml:"license,omitempty"`
	Repository string `yaml:"repository,omitempty"`
}

// Validate checks the manifest for structural problems: a missing name or
// version, an empty or self-referential dependency, or a dependency listed
// twice.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("manifest version is required for plugin %s", m.Name)
	}

	seen := make(map[string]struct{}, len(m.Depends))
	for _, dep := range m.Depends {
		if dep == "" {
			return fmt.Errorf("plugin %s declares an empty dependency name", m.Name)
		}
		if dep == m.Name {
			return fmt.Errorf("plugin %s cannot depend on itself", m.Name)
		}
		if _, dup := seen[dep]; dup {
			return fmt.Errorf("plugin %s declares dependency %s twice", m.Name, dep)
		}
		seen[dep] = struct{}{}
	}
	return nil
}

// Load reads and parses a plugin.yaml file from the given path.
// If the path is a directory, it looks for plugin.yaml or plugin.yml in that
// directory.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var manifestPath string
	if info.IsDir() {
		// Try plugin.yaml first, then plugin.yml
		yamlPath := filepath.Join(path, "plugin.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			manifestPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "plugin.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				manifestPath = ymlPath
			} else {
				return nil, fmt.Errorf("no plugin.yaml or plugin.yml found in %s", path)
			}
		}
	} else {
		manifestPath = path
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest file: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Discover scans the immediate subdirectories of root for plugin manifests
// and returns the ones that parse and validate, sorted by plugin name.
// Subdirectories without a manifest are skipped; a malformed manifest fails
// the whole discovery so broken definitions are not silently dropped.
func Discover(root string) ([]*Manifest, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin directory: %w", err)
	}

	var manifests []*Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		// Directories without a manifest are not plugin directories.
		dir := filepath.Join(root, entry.Name())
		if !hasManifest(dir) {
			continue
		}

		m, err := Load(dir)
		if err != nil {
			return nil, fmt.Errorf("plugin directory %s: %w", dir, err)
		}
		manifests = append(manifests, m)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].Name < manifests[j].Name
	})

	return manifests, nil
}

func hasManifest(dir string) bool {
	for _, name := range []string{"plugin.yaml", "plugin.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
