package resolver

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, ParseList("A,B,C"))
	assert.Equal(t, []string{"Echo"}, ParseList("Echo"))
	assert.Equal(t, []string{"A", " B"}, ParseList("A, B"))
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		Name     string
		Content  string
		Expected []string
	}{
		{"trailing newline", "A\nB\n", []string{"A", "B"}},
		{"no trailing newline", "A\nB", []string{"A", "B"}},
		{"crlf", "A\r\nB\r\n", []string{"A", "B"}},
		{"bare cr", "A\rB", []string{"A", "B"}},
		{"blank line kept", "A\n\nB\n", []string{"A", "", "B"}},
		{"empty", "", []string{}},
		{"only newline", "\n", []string{""}},
		{"whitespace kept", " A \n", []string{" A "}},
		{"vertical tab and form feed", "A\vB\fC", []string{"A", "B", "C"}},
		{"separators", "A\x1cB\x1dC\x1eD", []string{"A", "B", "C", "D"}},
		{"unicode line breaks", "Echo\u0085Flow\u2028Thanks\u2029", []string{"Echo", "Flow", "Thanks"}},
		{"cr then lf is one break", "A\r\n\nB", []string{"A", "", "B"}},
		{"lf then cr is two breaks", "A\n\rB", []string{"A", "", "B"}},
		{"tab is not a break", "A\tB", []string{"A\tB"}},
	}
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, SplitLines(tc.Content))
		})
	}
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "dependencies")
	require.NoError(t, ioutil.WriteFile(file, []byte("A\nB\n"), 0644))

	list := "A,B,C"
	seed, err := Seed(&list, file)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, seed, "the list wins over the file")

	seed, err = Seed(nil, file)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, seed)

	_, err = Seed(nil, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
