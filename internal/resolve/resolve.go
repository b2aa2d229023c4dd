package resolve

import (
	"context"
	"fmt"
	"strings"

	"mwdeps/internal/cmdutil"
	"mwdeps/internal/config"
	"mwdeps/internal/resolver"
)

// ResolveCommand is a Command implementation that prints the repositories the
// extension under test depends on.
type ResolveCommand struct {
	cmdutil.Helper
}

// Synopsis of resolve command
func (c *ResolveCommand) Synopsis() string {
	return "Print the dependencies of the extension under test"
}

// Help returns information about the `resolve` command
func (c *ResolveCommand) Help() string {
	helpText := `
Usage: mwdeps [resolve] [options]

    Resolve the transitive dependencies of the MediaWiki extension under test
    and print them as one line of space separated repository paths, ready to
    be passed to Quibble.

    The direct dependencies are read from the DEPENDENCIES environment variable
    (comma separated) or, when it is unset, from the "dependencies" file with
    one name per line. MEDIAWIKI_VERSION selects version specific corrections.

Options:
  --help                    Show this message.
  --dependencies=<list>     Comma separated direct dependencies. Overrides
                            DEPENDENCIES.
  --dependencies-file=<f>   File listing one direct dependency per line.
                            (default "dependencies")
  --mediawiki-version=<v>   MediaWiki branch under test, e.g. REL1_35.
                            Overrides MEDIAWIKI_VERSION.
  --table=<file>            YAML, TOML or JSON dependency table merged over the
                            built-in table.
  --table-url=<url>         Fetch a dependency table and merge it over the
                            built-in table.
  --no-default-table        Do not use the built-in table.
  --exclude=<glob>          Never print matching dependencies. Can be repeated.
  -v, -vv, -vvv             Log to stderr at info, debug or trace level.
`
	return strings.TrimSpace(helpText)
}

// Run resolves and prints the dependencies
func (c *ResolveCommand) Run(args []string) int {
	if err := parseResolveArgs(args); err != nil {
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
	result, err := resolver.Resolve(table, opts)
	if err != nil {
		c.LogError("could not resolve dependencies", err)
		return 1
	}
	for _, applied := range result.Applied {
		c.Config.Logger.Info("removed dependency for MediaWiki version", "version", c.Config.MediaWikiVersion, "extension", applied.Extension, "dependency", applied.Remove)
	}

	c.Ui.Output(result.String())
	return 0
}

func parseResolveArgs(args []string) error {
	for _, arg := range args {
		if config.IsGlobalFlag(arg) {
			continue
		}
		if strings.HasPrefix(arg, "-") {
			return fmt.Errorf("unknown flag: %v", arg)
		}
		return fmt.Errorf("unexpected argument: %v", arg)
	}
	return nil
}
