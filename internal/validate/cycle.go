package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pamela-lang/pamela/internal/ir"
)

// checkInheritanceCycles is an enrichment beyond the distilled contract: it
// statically detects :inherit cycles among declared pclasses before any
// per-pclass validation runs. Unlike the sync-rule cycle detector this is
// adapted from, an inheritance cycle is never intentional — a pclass cannot
// be its own ancestor — so it is a hard error rather than a warning.
func checkInheritanceCycles(tree ir.IR, order []ir.Symbol) error {
	graph := buildInheritanceGraph(tree, order)
	sccs := tarjanSCC(graph)

	for _, scc := range sccs {
		if len(scc) > 1 || (len(scc) == 1 && hasSelfLoop(scc[0], graph)) {
			path := reconstructCyclePath(scc, graph)
			return &Error{
				Pclass:  scc[0],
				Context: []string{":inherit"},
				Message: fmt.Sprintf("inheritance cycle detected: %s", joinSymbols(path, " -> ")),
			}
		}
	}
	return nil
}

type inheritanceGraph map[ir.Symbol][]ir.Symbol

func buildInheritanceGraph(tree ir.IR, order []ir.Symbol) inheritanceGraph {
	graph := make(inheritanceGraph, len(order))
	for _, name := range order {
		pclass, ok := tree[name].(*ir.Pclass)
		if !ok {
			continue
		}
		if graph[name] == nil {
			graph[name] = []ir.Symbol{}
		}
		graph[name] = append(graph[name], pclass.Inherit...)
	}
	return graph
}

func hasSelfLoop(node ir.Symbol, graph inheritanceGraph) bool {
	for _, neighbor := range graph[node] {
		if neighbor == node {
			return true
		}
	}
	return false
}

// tarjanSCC finds strongly connected components of the inheritance graph.
// Visits nodes in a fixed order so that the first cycle reported is
// deterministic across runs.
func tarjanSCC(graph inheritanceGraph) [][]ir.Symbol {
	var (
		index   = 0
		stack   []ir.Symbol
		indices = make(map[ir.Symbol]int)
		lowlink = make(map[ir.Symbol]int)
		onStack = make(map[ir.Symbol]bool)
		sccs    [][]ir.Symbol
	)

	var strongConnect func(ir.Symbol)
	strongConnect = func(v ir.Symbol) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var scc []ir.Symbol
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	nodes := make([]ir.Symbol, 0, len(graph))
	for node := range graph {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	for _, node := range nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// reconstructCyclePath walks SCC members starting from the first, following
// edges within the SCC until it returns to the start.
func reconstructCyclePath(scc []ir.Symbol, graph inheritanceGraph) []ir.Symbol {
	if len(scc) == 0 {
		return nil
	}
	sccSet := make(map[ir.Symbol]bool, len(scc))
	for _, n := range scc {
		sccSet[n] = true
	}

	start := scc[0]
	current := start
	path := []ir.Symbol{current}
	visited := make(map[ir.Symbol]bool)

	for {
		visited[current] = true
		var next ir.Symbol
		for _, neighbor := range graph[current] {
			if sccSet[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}
		if next == "" {
			break
		}
		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}
	return path
}

func joinSymbols(syms []ir.Symbol, sep string) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = string(s)
	}
	return strings.Join(parts, sep)
}
