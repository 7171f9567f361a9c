package team

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML shape of a team definition:
//
//	name: core
//	members:
//	  - {id: ana, l: 2.0, v: 1.0, r: 0.1}
//	pairs:
//	  - {i: ana, j: ben, s: 0.8}
type File struct {
	Name    string   `yaml:"name"`
	Members []Member `yaml:"members"`
	Pairs   []Pair   `yaml:"pairs"`
}

// Load reads a team YAML file and returns the validated snapshot.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read team file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse team file: %w", err)
	}
	return New(f.Name, f.Members, f.Pairs)
}

// Save writes a snapshot back to a team YAML file.
func Save(path string, s *Snapshot) error {
	f := File{Name: s.Name(), Members: s.Members(), Pairs: s.Pairs()}
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
