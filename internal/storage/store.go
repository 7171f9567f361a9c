// Package storage persists analysis runs as plain files: one directory
// per run holding metadata.json and the pruned graph.json.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/love-os/teamgrav/internal/gravity"
	"github.com/love-os/teamgrav/internal/report"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the queryable summary of one saved analysis.
type RunMetadata struct {
	ID        string    `json:"id"`
	Team      string    `json:"team"`
	Timestamp time.Time `json:"timestamp"`
	Kappa     float64   `json:"kappa"`
	Epsilon   float64   `json:"epsilon"`
	K         float64   `json:"k"`
	D         float64   `json:"d"`
	M         float64   `json:"m"`
	TGI       float64   `json:"tgi"`
	Stable    bool      `json:"stable"`
}

// Save writes one run directory and returns its id. The id combines the
// team name with a short random suffix so concurrent saves never collide.
func (s *Store) Save(teamName string, m *gravity.Metrics, g *report.Graph) (string, error) {
	name := teamName
	if name == "" {
		name = "team"
	}
	runID := fmt.Sprintf("%s_%s", name, strings.Split(uuid.NewString(), "-")[0])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Team:      teamName,
		Timestamp: time.Now(),
		Kappa:     m.Params.Kappa,
		Epsilon:   m.Params.Epsilon,
		K:         m.K,
		D:         m.D,
		M:         m.M,
		TGI:       m.TGI(),
		Stable:    m.Stable,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "graph.json"), g); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadGraph(runID string) (*report.Graph, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "graph.json"))
	if err != nil {
		return nil, err
	}
	var g report.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all saved runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
