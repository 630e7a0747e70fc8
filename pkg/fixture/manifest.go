package fixture

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// ManifestEntry records one generated fixture's identity: byte size and
// content digest are enough to compare two generation runs for
// byte-identity without shipping the fixtures themselves.
type ManifestEntry struct {
	Name   string `yaml:"name"`
	File   string `yaml:"file"`
	Size   int64  `yaml:"size"`
	Digest string `yaml:"blake3"`
}

// Manifest summarizes one vector-generation run.
type Manifest struct {
	RunID    string          `yaml:"run_id"`
	Fixtures []ManifestEntry `yaml:"fixtures"`
}

// Add digests the fixture at path and appends its entry.
func (m *Manifest) Add(name, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("digest fixture %s: %w", path, err)
	}
	sum := blake3.Sum256(raw)
	m.Fixtures = append(m.Fixtures, ManifestEntry{
		Name:   name,
		File:   path,
		Size:   int64(len(raw)),
		Digest: hex.EncodeToString(sum[:]),
	})
	return nil
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(path string) error {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// LoadManifest reads a manifest written by Save.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
