package info

import (
	"context"
	"fmt"
	"strings"

	"mwdeps/internal/cmdutil"
	"mwdeps/internal/config"
	"mwdeps/internal/graph"
	"mwdeps/internal/ui"
)

// ValidateCommand is a Command implementation that checks the dependency table
type ValidateCommand struct {
	cmdutil.Helper
}

// Synopsis of validate command
func (c *ValidateCommand) Synopsis() string {
	return "Check the dependency table for cycles and self dependencies"
}

// Help returns information about the `validate` command
func (c *ValidateCommand) Help() string {
	helpText := `
Usage: mwdeps validate [options]

  Load the dependency table and report cycles, entries depending on
  themselves and corrections that name unknown entries. Cycles are
  resolved fine and only fail validation with --strict.

Options:
  --strict   Treat cycles as errors.

  Table inputs are the same as for "mwdeps resolve".
`
	return strings.TrimSpace(helpText)
}

// Run validates the table
func (c *ValidateCommand) Run(args []string) int {
	strict := false
	for _, arg := range args {
		switch {
		case arg == "--strict":
			strict = true
		case !config.IsGlobalFlag(arg):
			c.LogError("", fmt.Errorf("unknown argument: %v", arg))
			return 1
		}
	}

	table, err := c.LoadTable(context.Background())
	if err != nil {
		c.LogError("could not load dependency table", err)
		return 1
	}
	for _, correction := range c.Config.Corrections {
		deps, ok := table[correction.Extension]
		if !ok {
			c.LogWarning("", fmt.Errorf("correction for unknown entry %v", correction.Extension))
			continue
		}
		if !contains(deps, correction.Remove) {
			c.LogWarning("", fmt.Errorf("%v does not depend on %v", correction.Extension, correction.Remove))
		}
	}
	g := graph.New(table)
	if strict {
		if err := g.Validate(); err != nil {
			c.LogError("", err)
			return 1
		}
	}
	for _, cycle := range g.Cycles() {
		c.LogWarning("", fmt.Errorf("cycle: %v", strings.Join(cycle, ", ")))
	}
	if self := g.SelfDependencies(); len(self) > 0 {
		c.LogError("", fmt.Errorf("entries depend on themselves: %v", strings.Join(self, ", ")))
		return 1
	}
	c.Ui.Output(fmt.Sprintf("✔ Dependency table is valid (%s entries)", ui.Bold(fmt.Sprint(len(table)))))
	return 0
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
