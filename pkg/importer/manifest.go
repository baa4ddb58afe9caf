package importer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is written next to the generated SQL file.
const ManifestFile = "manifest.yaml"

// Manifest describes one build.
type Manifest struct {
	RunID       string       `yaml:"run_id"`
	GeneratedAt time.Time    `yaml:"generated_at"`
	Output      string       `yaml:"output"`
	CountiesURL string       `yaml:"counties_url"`
	Tables      []TableCount `yaml:"tables"`
}

// TableCount is the number of statements written for a table.
type TableCount struct {
	Name string `yaml:"name"`
	Rows int    `yaml:"rows"`
}

// Rows returns the total number of statements.
func (m *Manifest) Rows() int {
	n := 0
	for _, t := range m.Tables {
		n += t.Rows
	}
	return n
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
