package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mwdeps/internal/deptable"
)

func TestToPath(t *testing.T) {
	assert.Equal(t, "mediawiki/extensions/Echo", ToPath(DefaultPrefix, "Echo"))
	assert.Equal(t, "mediawiki/skins/Foo", ToPath(DefaultPrefix, "skins/Foo"))
	assert.Equal(t, "mediawiki/skins/Foo", ToPath("mediawiki/extensions/", "skins/Foo"))
}

func TestResolve(t *testing.T) {
	cases := []struct {
		Name     string
		Table    deptable.Table
		Options  Options
		Expected string
	}{
		{
			"chain",
			deptable.Table{"A": {}, "B": {"A"}},
			Options{Seed: []string{"B"}},
			"mediawiki/extensions/A mediawiki/extensions/B",
		},
		{
			"skins",
			deptable.Table{"MobileFrontend": {"skins/MinervaNeue"}},
			Options{Seed: []string{"MobileFrontend"}},
			"mediawiki/extensions/MobileFrontend mediawiki/skins/MinervaNeue",
		},
		{
			"default exclusion",
			deptable.Table{"Echo": {"EventLogging"}, "EventLogging": {"EventStreamConfig"}},
			Options{Seed: []string{"Echo"}, Exclusions: DefaultExclusions},
			"mediawiki/extensions/Echo mediawiki/extensions/EventStreamConfig",
		},
		{
			"glob exclusion on path",
			deptable.Table{"A": {"skins/Vector"}},
			Options{Seed: []string{"A"}, Exclusions: []string{"mediawiki/skins/*"}},
			"mediawiki/extensions/A",
		},
		{
			"custom prefix",
			deptable.Table{},
			Options{Seed: []string{"A"}, Prefix: "wiki/extensions/"},
			"wiki/extensions/A",
		},
		{
			"empty seed",
			deptable.Table{"A": {"B"}},
			Options{Seed: []string{}},
			"",
		},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			result, err := Resolve(tc.Table, tc.Options)
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, result.String())
		})
	}
}

func TestResolveCorrection(t *testing.T) {
	table := deptable.Table{
		"EventLogging": {"EventBus", "EventStreamConfig"},
		"EventBus":     {},
	}
	opts := Options{
		Seed:        []string{"EventLogging"},
		Corrections: deptable.DefaultCorrections,
	}

	result, err := Resolve(table, opts)
	require.NoError(t, err)
	assert.Contains(t, result.Paths, "mediawiki/extensions/EventBus")
	assert.Empty(t, result.Applied)

	opts.MediaWikiVersion = "REL1_35"
	result, err = Resolve(table, opts)
	require.NoError(t, err)
	assert.NotContains(t, result.Paths, "mediawiki/extensions/EventBus")
	assert.Equal(t, deptable.DefaultCorrections, result.Applied)
	assert.Equal(t, []string{"EventBus", "EventStreamConfig"}, table["EventLogging"], "input table must stay untouched")

	// Still reachable through another entry.
	table["Echo"] = []string{"EventBus"}
	opts.Seed = []string{"EventLogging", "Echo"}
	result, err = Resolve(table, opts)
	require.NoError(t, err)
	assert.Contains(t, result.Paths, "mediawiki/extensions/EventBus")
}

func TestResolveNeverOutputsExcludedName(t *testing.T) {
	table := deptable.Default()
	result, err := Resolve(table, Options{
		Seed:       []string{"Flow", "AbuseFilter", "EventLogging"},
		Exclusions: DefaultExclusions,
	})
	require.NoError(t, err)
	assert.Contains(t, result.Names, "EventLogging")
	assert.NotContains(t, result.Paths, "mediawiki/extensions/EventLogging")
	assert.Equal(t, []string{"mediawiki/extensions/EventLogging"}, result.Excluded)
}

func TestResolveDeterministic(t *testing.T) {
	table := deptable.Default()
	opts := Options{Seed: []string{"UnifiedExtensionForFemiwiki"}, Exclusions: DefaultExclusions}
	first, err := Resolve(table, opts)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Resolve(table, opts)
		require.NoError(t, err)
		assert.Equal(t, first.String(), again.String())
	}
}

func TestResolveInvalidExclusion(t *testing.T) {
	_, err := Resolve(deptable.Table{}, Options{Seed: []string{"A"}, Exclusions: []string{"[unclosed"}})
	assert.Error(t, err)
}
