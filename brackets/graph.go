package brackets

import (
	"errors"
	"slices"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/Jeff92400/Carambole-tournament-management-sub001/models"
)

// Round2Stage is the vertex standing for the not-yet-created round-2 matches.
// Every round-1 match feeds it.
const Round2Stage = "CL_R2-*"

type MatchNode struct {
	Key   string
	Phase models.Phase
}

func nodeKey(n MatchNode) string {
	return n.Key
}

// MatchGraph models which matches take their players from which. An edge
// A -> B means B's slots are filled from A's result.
type MatchGraph struct {
	graph.Graph[string, MatchNode]
	adjacencyMap map[string]map[string]graph.Edge[string]
	rank         map[string]int
}

// NewMatchGraph builds the dependency graph of a tournament's matches. The
// round-2 stage vertex is only added when round 2 is enabled.
func NewMatchGraph(matches []*models.Match, round2Enabled bool) (*MatchGraph, error) {
	g := &MatchGraph{
		Graph: graph.New(nodeKey, graph.Directed(), graph.Acyclic(), graph.PreventCycles()),
		rank:  make(map[string]int, len(matches)+1),
	}

	byKey := make(map[string]*models.Match, len(matches))
	for i, m := range phaseOrdered(matches) {
		if err := g.AddVertex(MatchNode{Key: m.Key(), Phase: m.Phase}); err != nil {
			return nil, err
		}
		byKey[m.Key()] = m
		g.rank[m.Key()] = i
	}

	finalKey := models.MatchKey(models.PhaseFinal, 1)
	petiteKey := models.MatchKey(models.PhasePetiteFinale, 1)
	for _, m := range phaseMatches(matches, models.PhaseSemifinal) {
		for _, target := range []string{finalKey, petiteKey} {
			if _, ok := byKey[target]; ok {
				if err := g.addEdge(m.Key(), target); err != nil {
					return nil, err
				}
			}
		}
	}

	if round2Enabled {
		if err := g.AddVertex(MatchNode{Key: Round2Stage, Phase: models.PhaseClassificationR2}); err != nil {
			return nil, err
		}
		g.rank[Round2Stage] = len(matches)
		r1 := phaseMatches(matches, models.PhaseClassificationR1)
		for _, m := range r1 {
			if err := g.addEdge(m.Key(), Round2Stage); err != nil {
				return nil, err
			}
		}
		for _, m := range phaseMatches(matches, models.PhaseClassificationR2) {
			for _, src := range []int{2*m.Order - 1, 2 * m.Order} {
				srcKey := models.MatchKey(models.PhaseClassificationR1, src)
				if _, ok := byKey[srcKey]; ok {
					if err := g.addEdge(srcKey, m.Key()); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return g, nil
}

func (g *MatchGraph) addEdge(source, target string) error {
	err := g.Graph.AddEdge(source, target)
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return nil
	}
	return err
}

// Dependants returns the vertices on the outgoing edges of key, sorted by key.
func (g *MatchGraph) Dependants(key string) []MatchNode {
	if g.adjacencyMap == nil {
		// The graph does not change after construction.
		g.adjacencyMap, _ = g.Graph.AdjacencyMap()
	}

	outEdges := g.adjacencyMap[key]
	dependants := make([]MatchNode, 0, len(outEdges))
	for k := range outEdges {
		dependant, err := g.Vertex(k)
		if err != nil {
			continue
		}
		dependants = append(dependants, dependant)
	}
	slices.SortFunc(dependants, func(a, b MatchNode) int {
		return strings.Compare(a.Key, b.Key)
	})
	return dependants
}

// Ordered returns match keys so that every match comes after the matches it
// depends on, ties broken by phase and order. The round-2 stage vertex is
// left out.
func (g *MatchGraph) Ordered() ([]string, error) {
	keys, err := graph.StableTopologicalSort(g.Graph, func(a, b string) bool { return g.rank[a] < g.rank[b] })
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(keys, func(k string) bool { return k == Round2Stage }), nil
}
