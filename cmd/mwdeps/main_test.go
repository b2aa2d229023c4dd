package main

import (
	"reflect"
	"testing"
)

func TestDefaultCmd(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "explicit command",
			args:     []string{"graph", "--out=graph.svg"},
			expected: []string{"graph", "--out=graph.svg"},
		},
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{"resolve"},
		},
		{
			name:     "root help",
			args:     []string{"--help"},
			expected: []string{"--help"},
		},
		{
			name:     "version",
			args:     []string{"--version"},
			expected: []string{"--version"},
		},
		{
			name:     "verbose flag",
			args:     []string{"-v"},
			expected: []string{"resolve", "-v"},
		},
		{
			name:     "global flags",
			args:     []string{"--mediawiki-version=REL1_35", "--exclude=Echo"},
			expected: []string{"resolve", "--mediawiki-version=REL1_35", "--exclude=Echo"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolved := resolveArgs(tc.args)
			if !reflect.DeepEqual(resolved, tc.expected) {
				t.Errorf("resolveArgs(%v) got %v, want %v", tc.args, resolved, tc.expected)
			}
		})
	}
}
