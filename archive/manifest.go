package archive

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest is a portable YAML listing of archive contents, used to move
// capture metadata between machines without copying the database.
type Manifest struct {
	ExportedAt time.Time `yaml:"exported_at"`
	Captures   []Capture `yaml:"captures"`
}

// ExportManifest writes all capture records to a YAML manifest at path
func (s *Store) ExportManifest(path string) error {
	captures, err := s.List()
	if err != nil {
		return err
	}

	m := Manifest{
		ExportedAt: time.Now().UTC(),
		Captures:   captures,
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	s.logger.Info("exported %d capture(s) to %s", len(captures), path)
	return nil
}

// ImportManifest loads a YAML manifest and saves any records whose IDs are
// not already present. Returns the number of imported records.
func (s *Store) ImportManifest(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return 0, fmt.Errorf("failed to parse manifest: %w", err)
	}

	imported := 0
	for i := range m.Captures {
		c := m.Captures[i]
		if c.ID == "" {
			return imported, fmt.Errorf("manifest entry %d has no ID", i)
		}
		if _, err := s.Get(c.ID); err == nil {
			continue
		}
		if err := s.Save(&c); err != nil {
			return imported, err
		}
		imported++
	}

	s.logger.Info("imported %d capture(s) from %s", imported, path)
	return imported, nil
}
