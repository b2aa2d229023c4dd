// Package resolver turns the direct dependencies of the MediaWiki extension under
// test into the list of repositories Quibble has to clone.
package resolver

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"mwdeps/internal/deptable"
	"mwdeps/internal/graph"
)

const (
	// TargetKey is the table entry holding the extension under test.
	TargetKey = "ext"
	// DefaultPrefix is prepended to every resolved name.
	DefaultPrefix = "mediawiki/extensions/"
)

// DefaultExclusions are never installed as dependencies.
var DefaultExclusions = []string{"EventLogging"}

// Options controls a single resolution.
type Options struct {
	// MediaWikiVersion selects which corrections apply, e.g. "REL1_35".
	MediaWikiVersion string
	// Seed is the direct dependency list of the extension under test.
	Seed []string
	// Corrections are applied to a copy of the table before resolving.
	Corrections []deptable.Correction
	// Exclusions are glob patterns matched against resolved names and paths.
	Exclusions []string
	// Prefix defaults to DefaultPrefix.
	Prefix string
	Logger hclog.Logger
}

// Result is the outcome of Resolve.
type Result struct {
	// Names are the resolved dependency names in resolver order.
	Names []string
	// Paths are the repository paths left after exclusion.
	Paths []string
	// Excluded lists the paths that were dropped.
	Excluded []string
	// Applied lists the corrections that matched the MediaWiki version.
	Applied []deptable.Correction
}

// String joins the paths with single spaces.
func (r *Result) String() string {
	return strings.Join(r.Paths, " ")
}

// ToPath maps a dependency name to its repository path. Names of the form
// "skins/Foo" end up under mediawiki/skins.
func ToPath(prefix string, name string) string {
	return strings.ReplaceAll(prefix+name, "/extensions/skins/", "/skins/")
}

// WorkingTable returns a copy of table with the corrections for the MediaWiki
// version applied and the seed stored under TargetKey. table is not modified.
func WorkingTable(table deptable.Table, opts Options) (deptable.Table, []deptable.Correction, error) {
	corrected, applied, err := table.Apply(opts.Corrections, opts.MediaWikiVersion)
	if err != nil {
		return nil, nil, err
	}
	return corrected.With(TargetKey, opts.Seed), applied, nil
}

// Resolve computes the repositories needed to test the extension described by opts.
func Resolve(table deptable.Table, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	exclusions, err := compileExclusions(opts.Exclusions)
	if err != nil {
		return nil, err
	}

	working, applied, err := WorkingTable(table, opts)
	if err != nil {
		return nil, err
	}
	for _, c := range applied {
		logger.Debug("applied correction", "version", opts.MediaWikiVersion, "extension", c.Extension, "removed", c.Remove)
	}
	logger.Trace("seed", "value", opts.Seed)

	names, err := graph.New(working).Dependencies(TargetKey)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Names:    names,
		Paths:    make([]string, 0, len(names)),
		Excluded: []string{},
		Applied:  applied,
	}
	for _, name := range names {
		p := ToPath(prefix, name)
		if excluded(exclusions, name, p) {
			logger.Debug("excluded dependency", "name", name)
			result.Excluded = append(result.Excluded, p)
			continue
		}
		result.Paths = append(result.Paths, p)
	}
	logger.Debug("resolved dependencies", "count", len(result.Paths))
	return result, nil
}

func compileExclusions(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid exclusion %q", pattern)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func excluded(globs []glob.Glob, name string, path string) bool {
	for _, g := range globs {
		if g.Match(name) || g.Match(path) {
			return true
		}
	}
	return false
}
