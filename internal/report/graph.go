package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/love-os/teamgrav/internal/gravity"
	"github.com/love-os/teamgrav/internal/team"
)

// DefaultCoverage is the fraction of total binding energy the pruned
// edge set must retain.
const DefaultCoverage = 0.90

// Node is the serialized form of a member plus its computed gravity.
type Node struct {
	ID string  `json:"id"`
	L  float64 `json:"L"`
	V  float64 `json:"V"`
	R  float64 `json:"R"`
	G  float64 `json:"G"`
}

// GraphEdge is a surviving binding edge after pruning.
type GraphEdge struct {
	I string  `json:"i"`
	J string  `json:"j"`
	K float64 `json:"k"`
}

// Graph is the Layer-3 output: all nodes, pruned edges.
type Graph struct {
	Nodes []Node      `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Prune builds the Layer-3 graph: every node, and the minimal prefix of
// edges (sorted descending by k) whose cumulative k reaches coverage*K.
// A non-positive K cannot be pruned against and is rejected.
func Prune(m *gravity.Metrics, coverage float64) (*Graph, error) {
	if coverage <= 0 || coverage > 1 {
		return nil, fmt.Errorf("%w: coverage %g outside (0,1]", team.ErrInvalidInput, coverage)
	}
	if m.K <= 0 {
		return nil, fmt.Errorf("%w: cannot prune graph with non-positive binding energy K=%g",
			team.ErrInvalidInput, m.K)
	}

	g := &Graph{Nodes: make([]Node, len(m.Members))}
	for i, mem := range m.Members {
		g.Nodes[i] = Node{ID: mem.ID, L: mem.L, V: mem.V, R: mem.R, G: m.G[i]}
	}

	edges := make([]gravity.Edge, len(m.Edges))
	copy(edges, m.Edges)
	sort.SliceStable(edges, func(a, b int) bool {
		if edges[a].K != edges[b].K {
			return edges[a].K > edges[b].K
		}
		if edges[a].I != edges[b].I {
			return edges[a].I < edges[b].I
		}
		return edges[a].J < edges[b].J
	})

	target := coverage * m.K
	cum := 0.0
	for _, e := range edges {
		g.Edges = append(g.Edges, GraphEdge{I: e.I, J: e.J, K: e.K})
		cum += e.K
		if cum >= target {
			break
		}
	}
	return g, nil
}

// WriteJSON streams the graph as indented JSON.
func (g *Graph) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
