package deptable

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// Correction removes one dependency from one entry of the table when the MediaWiki
// version under test matches. It models a known incompatibility between an
// extension and a MediaWiki release.
type Correction struct {
	// Branch is matched exactly against the MediaWiki version, e.g. "REL1_35".
	Branch string `json:"branch,omitempty"`
	// Constraint is a semver constraint such as "<1.36" evaluated against the
	// version of a RELx_y branch. Ignored for branches that are not releases.
	Constraint string `json:"constraint,omitempty"`
	// Extension is the entry to correct.
	Extension string `json:"extension"`
	// Remove is the dependency dropped from Extension.
	Remove string `json:"remove"`
}

// DefaultCorrections are always applied.
// EventBus cannot be loaded together with EventLogging on REL1_35.
var DefaultCorrections = []Correction{
	{Branch: "REL1_35", Extension: "EventLogging", Remove: "EventBus"},
}

var releaseBranch = regexp.MustCompile(`^REL(\d+)_(\d+)$`)

// BranchVersion parses a MediaWiki release branch name like REL1_35 into 1.35.0.
// The second return value is false for anything that is not a release branch.
func BranchVersion(branch string) (*semver.Version, bool) {
	m := releaseBranch.FindStringSubmatch(branch)
	if m == nil {
		return nil, false
	}
	v, err := semver.NewVersion(fmt.Sprintf("%s.%s.0", m[1], m[2]))
	if err != nil {
		return nil, false
	}
	return v, true
}

// Matches reports whether the correction applies to the given MediaWiki version.
func (c Correction) Matches(version string) (bool, error) {
	if version == "" {
		return false, nil
	}
	if c.Branch != "" && c.Branch == version {
		return true, nil
	}
	if c.Constraint == "" {
		return false, nil
	}
	constraint, err := semver.NewConstraint(c.Constraint)
	if err != nil {
		return false, errors.Wrapf(err, "invalid constraint %q for %v", c.Constraint, c.Extension)
	}
	v, ok := BranchVersion(version)
	if !ok {
		return false, nil
	}
	return constraint.Check(v), nil
}

// Apply returns a copy of the table with every matching correction applied, along
// with the corrections that matched. A matching correction whose entry or
// dependency is missing from the table is an error.
func (t Table) Apply(corrections []Correction, version string) (Table, []Correction, error) {
	out := t.Clone()
	var applied []Correction
	for _, c := range corrections {
		ok, err := c.Matches(version)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		if _, found := out[c.Extension]; !found {
			return nil, nil, fmt.Errorf("cannot apply %v correction: %v is not in the dependency table", version, c.Extension)
		}
		if !out.Remove(c.Extension, c.Remove) {
			return nil, nil, fmt.Errorf("cannot apply %v correction: %v does not depend on %v", version, c.Extension, c.Remove)
		}
		applied = append(applied, c)
	}
	return out, applied, nil
}
