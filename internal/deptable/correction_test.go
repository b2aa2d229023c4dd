package deptable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchVersion(t *testing.T) {
	v, ok := BranchVersion("REL1_35")
	require.True(t, ok)
	assert.Equal(t, "1.35.0", v.String())

	for _, branch := range []string{"master", "", "REL1", "rel1_35", "REL1_35_1"} {
		_, ok := BranchVersion(branch)
		assert.False(t, ok, branch)
	}
}

func TestCorrectionMatches(t *testing.T) {
	cases := []struct {
		Name       string
		Correction Correction
		Version    string
		Expected   bool
	}{
		{"exact branch", Correction{Branch: "REL1_35"}, "REL1_35", true},
		{"other branch", Correction{Branch: "REL1_35"}, "REL1_36", false},
		{"unset version", Correction{Branch: "REL1_35"}, "", false},
		{"master", Correction{Branch: "REL1_35"}, "master", false},
		{"constraint match", Correction{Constraint: "<1.36"}, "REL1_35", true},
		{"constraint miss", Correction{Constraint: "<1.36"}, "REL1_39", false},
		{"constraint on master", Correction{Constraint: "<1.36"}, "master", false},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			ok, err := tc.Correction.Matches(tc.Version)
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, ok)
		})
	}
}

func TestCorrectionInvalidConstraint(t *testing.T) {
	_, err := Correction{Constraint: "not a constraint", Extension: "Echo"}.Matches("REL1_35")
	assert.Error(t, err)
}

func TestApplyDefaultCorrections(t *testing.T) {
	table := Table{
		"EventLogging": {"EventBus", "EventStreamConfig"},
		"EventBus":     {"EventStreamConfig"},
	}

	corrected, applied, err := table.Apply(DefaultCorrections, "REL1_35")
	require.NoError(t, err)
	assert.Equal(t, []string{"EventStreamConfig"}, corrected["EventLogging"])
	assert.Len(t, applied, 1)
	assert.Equal(t, []string{"EventBus", "EventStreamConfig"}, table["EventLogging"], "input table must stay untouched")

	unchanged, applied, err := table.Apply(DefaultCorrections, "REL1_39")
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.Equal(t, table, unchanged)
}

func TestApplyMissingTarget(t *testing.T) {
	cases := []struct {
		Name   string
		Table  Table
		ErrMsg string
	}{
		{
			Name:   "entry missing",
			Table:  Table{"Echo": {"EventLogging"}},
			ErrMsg: "EventLogging is not in the dependency table",
		},
		{
			Name:   "dependency missing",
			Table:  Table{"EventLogging": {"EventStreamConfig"}},
			ErrMsg: "EventLogging does not depend on EventBus",
		},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			_, _, err := tc.Table.Apply(DefaultCorrections, "REL1_35")
			assert.EqualError(t, err, "cannot apply REL1_35 correction: "+tc.ErrMsg)

			// Corrections that do not match the version never look at the table.
			_, applied, err := tc.Table.Apply(DefaultCorrections, "REL1_39")
			require.NoError(t, err)
			assert.Empty(t, applied)
		})
	}
}
