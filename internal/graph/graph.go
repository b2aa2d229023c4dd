// Package graph builds a dependency graph from a dependency table and walks it to
// find the transitive dependencies of an entry.
package graph

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/pyr-sh/dag"
	"mwdeps/internal/deptable"
)

// DependencyGraph expresses the dependencies between extensions and skins. An edge
// points from an entry to something it depends on.
type DependencyGraph struct {
	graph dag.AcyclicGraph
}

// New builds the graph for every entry of the table. Names that only appear as
// dependencies become leaf vertices.
func New(table deptable.Table) *DependencyGraph {
	g := &DependencyGraph{}
	vertices := mapset.NewSet()
	names := table.Names()
	for _, name := range names {
		vertices.Add(name)
		for _, dep := range table[name] {
			vertices.Add(dep)
		}
	}
	for v := range vertices.Iter() {
		g.graph.Add(v)
	}
	for _, name := range names {
		for _, dep := range table[name] {
			g.graph.Connect(dag.BasicEdge(name, dep))
		}
	}
	return g
}

// Dependencies returns every name reachable from key, sorted. key itself is never
// part of the result, even when a cycle leads back to it. Cycles elsewhere in the
// table are tolerated.
func (g *DependencyGraph) Dependencies(key string) ([]string, error) {
	if !g.graph.HasVertex(key) {
		return []string{}, nil
	}
	ancestors, err := g.graph.Ancestors(key)
	if err != nil {
		return nil, fmt.Errorf("could not traverse the dependency graph from %v: %w", key, err)
	}
	deps := make([]string, 0, len(ancestors))
	for _, v := range ancestors.List() {
		name := v.(string)
		if name == key {
			continue
		}
		deps = append(deps, name)
	}
	sort.Strings(deps)
	return deps, nil
}

// Cycles returns every cycle of the graph, each sorted by name.
func (g *DependencyGraph) Cycles() [][]string {
	var cycles [][]string
	for _, cycle := range g.graph.Cycles() {
		vertices := make([]string, len(cycle))
		for i, vertex := range cycle {
			vertices[i] = vertex.(string)
		}
		sort.Strings(vertices)
		cycles = append(cycles, vertices)
	}
	sort.Slice(cycles, func(i, j int) bool {
		return strings.Join(cycles[i], ",") < strings.Join(cycles[j], ",")
	})
	return cycles
}

// SelfDependencies returns the sorted names of entries that depend on themselves.
func (g *DependencyGraph) SelfDependencies() []string {
	var names []string
	for _, e := range g.graph.Edges() {
		if e.Source() == e.Target() {
			names = append(names, e.Source().(string))
		}
	}
	sort.Strings(names)
	return names
}

// Validate reports cycles and entries that depend on themselves. Resolution works
// regardless, so callers decide whether these are fatal.
func (g *DependencyGraph) Validate() error {
	var problems []string
	for _, cycle := range g.Cycles() {
		problems = append(problems, "\tcycle: "+strings.Join(cycle, ","))
	}
	for _, name := range g.SelfDependencies() {
		problems = append(problems, fmt.Sprintf("\t%v depends on itself", name))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid dependency table:\n%s", strings.Join(problems, "\n"))
}

// Dot renders the part of the graph reachable from key in Graphviz dot format.
func (g *DependencyGraph) Dot(key string) (string, error) {
	deps, err := g.Dependencies(key)
	if err != nil {
		return "", err
	}
	included := mapset.NewSet(key)
	for _, dep := range deps {
		included.Add(dep)
	}
	var sub dag.AcyclicGraph
	for v := range included.Iter() {
		sub.Add(v)
	}
	for _, e := range g.graph.Edges() {
		if included.Contains(e.Source()) && included.Contains(e.Target()) {
			sub.Connect(dag.BasicEdge(e.Source(), e.Target()))
		}
	}
	return string(sub.Dot(&dag.DotOpts{
		Verbose:    true,
		DrawCycles: true,
	})), nil
}
