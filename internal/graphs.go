// This file contains thin wrappers around the graph module
// for managing the bracket structure of a tournament.
package internal

import (
	"github.com/dominikbraun/graph"
)

type GraphNode interface {
	// A unique ID that is used as the node hash
	Id() int
}

func getNodeId[T GraphNode](node T) int {
	return node.Id()
}

type DependencyGraph[T GraphNode] struct {
	graph.Graph[int, T]
	adjancencyMap map[int]map[int]graph.Edge[int]
}

func (g *DependencyGraph[T]) AddEdge(source, target T) error {
	err := g.Graph.AddEdge(source.Id(), target.Id())
	return err
}

// Returns the nodes that are on the outgoing edges of the given
// source node (the dependants).
func (g *DependencyGraph[T]) GetDependants(source T) []T {
	if g.adjancencyMap == nil {
		// Since the graphs do not change after their initialization
		// the adjacency map is stored on the first call
		g.adjancencyMap, _ = g.Graph.AdjacencyMap()
	}

	outEdges := g.adjancencyMap[source.Id()]
	dependants := make([]T, 0, len(outEdges))
	for k := range outEdges {
		dependant, _ := g.Vertex(k)
		dependants = append(dependants, dependant)
	}

	return dependants
}

// Returns the number of edges between the given node and the
// end of its dependency chain. Every node of an elimination tree
// has at most one dependant so the chain is unique.
func (g *DependencyGraph[T]) Depth(source T) int {
	depth := 0
	node := source
	for {
		next := g.GetDependants(node)
		if len(next) == 0 {
			return depth
		}
		node = next[0]
		depth += 1
	}
}

// The EliminationGraph has all matches of an elimination
// tournament as its nodes. The edges between the nodes model
// the path that the players take towards the final like
// a conventional tournament tree.
type EliminationGraph struct {
	DependencyGraph[*Match]
}

func NewEliminationGraph() *EliminationGraph {
	graph := DependencyGraph[*Match]{
		Graph: graph.New(getNodeId[*Match], graph.Directed(), graph.Acyclic()),
	}
	eliminationGraph := EliminationGraph{DependencyGraph: graph}
	return &eliminationGraph
}
