package info

import (
	"context"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"mwdeps/internal/cmdutil"
	"mwdeps/internal/config"
	"mwdeps/internal/graph"
	"mwdeps/internal/resolver"
	"mwdeps/internal/ui"
)

// GraphCommand is a Command implementation that renders the dependency graph of
// the extension under test
type GraphCommand struct {
	cmdutil.Helper
}

// Synopsis of graph command
func (c *GraphCommand) Synopsis() string {
	return "Generate a Dot graph of the dependencies of the extension under test"
}

// Help returns information about the `graph` command
func (c *GraphCommand) Help() string {
	helpText := `
Usage: mwdeps graph [options]

  Generate a Dot graph of everything the extension under test depends on.
  The graph is printed unless --out is given and Graphviz is installed.

Options:
  --out=<file>   Render the graph with Graphviz. The image format follows the
                 file extension, e.g. graph.png or graph.svg.

  Dependency inputs are the same as for "mwdeps resolve".
`
	return strings.TrimSpace(helpText)
}

// Run renders the graph
func (c *GraphCommand) Run(args []string) int {
	out, err := parseGraphArgs(args)
	if err != nil {
		c.LogError("", err)
		return 1
	}

	table, err := c.LoadTable(context.Background())
	if err != nil {
		c.LogError("could not load dependency table", err)
		return 1
	}
	opts, err := c.ResolveOptions()
	if err != nil {
		c.LogError("could not read direct dependencies", err)
		return 1
	}
	working, _, err := resolver.WorkingTable(table, opts)
	if err != nil {
		c.LogError("", err)
		return 1
	}
	graphString, err := graph.New(working).Dot(resolver.TargetKey)
	if err != nil {
		c.LogError("could not generate graph", err)
		return 1
	}

	if out == "" {
		c.Ui.Output(graphString)
		return 0
	}
	if !hasGraphViz() {
		c.Ui.Warn(ui.Warn("`mwdeps` uses Graphviz to generate an image of your\ngraph, but Graphviz isn't installed on this machine."))
		c.Ui.Warn(ui.Dim("You can download Graphviz from https://graphviz.org/download."))
		c.Ui.Output(graphString)
		return 0
	}
	cmd := exec.Command("dot", "-T"+path.Ext(out)[1:], "-o", out)
	cmd.Stdin = strings.NewReader(graphString)
	if err := cmd.Run(); err != nil {
		c.LogError("", fmt.Errorf("could not generate graph file %v: %w", out, err))
		return 1
	}
	c.Ui.Info(fmt.Sprintf("✔ Generated dependency graph in %s", ui.Bold(out)))
	return 0
}

func parseGraphArgs(args []string) (string, error) {
	out := ""
	for _, arg := range args {
		switch {
		case config.IsGlobalFlag(arg):
		case strings.HasPrefix(arg, "--out="):
			out = arg[len("--out="):]
			if len(path.Ext(out)) < 2 {
				return "", fmt.Errorf("--out needs a file extension naming the image format, e.g. graph.png")
			}
		case strings.HasPrefix(arg, "-"):
			return "", fmt.Errorf("unknown flag: %v", arg)
		default:
			return "", fmt.Errorf("unexpected argument: %v", arg)
		}
	}
	return out, nil
}

func hasGraphViz() bool {
	err := exec.Command("dot", "-V").Run()
	return err == nil
}
