// Package cmdutil holds functionality shared by the mwdeps commands.
package cmdutil

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/mitchellh/cli"
	"mwdeps/internal/client"
	"mwdeps/internal/config"
	"mwdeps/internal/deptable"
	"mwdeps/internal/resolver"
	"mwdeps/internal/ui"
)

// Helper is embedded by every command.
type Helper struct {
	Config *config.Config
	Ui     *cli.ColoredUi
}

// LogError logs an error and outputs it to the UI.
func (h *Helper) LogError(prefix string, err error) {
	h.Config.Logger.Error(prefix, "error", err)

	if prefix != "" {
		prefix += ": "
	}

	h.Ui.Error(fmt.Sprintf("%s%s%s", ui.ErrorPrefix, prefix, color.RedString(" %v", err)))
}

// LogWarning logs a warning and outputs it to the UI.
func (h *Helper) LogWarning(prefix string, err error) {
	h.Config.Logger.Warn(prefix, "warning", err)

	if prefix != "" {
		prefix += ": "
	}

	h.Ui.Warn(fmt.Sprintf("%s%s%s", ui.WarningPrefix, prefix, color.YellowString(" %v", err)))
}

// LoadTable assembles the dependency table: the built-in table, then the table
// file, then the table fetched from the configured URL, each overriding entries of
// the previous one.
func (h *Helper) LoadTable(ctx context.Context) (deptable.Table, error) {
	logger := h.Config.Logger.Named("table")
	table := deptable.Table{}
	if !h.Config.NoDefaultTable {
		table = deptable.Default()
		logger.Debug("loaded built-in table", "entries", len(table))
	}
	if h.Config.Table != "" {
		fileTable, err := deptable.Load(h.Config.Table)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded table file", "path", h.Config.Table, "entries", len(fileTable))
		table = table.Merge(fileTable)
	}
	if h.Config.TableURL != "" {
		remote, err := client.NewClient(logger.Named("http"), h.Config.Version).FetchTable(ctx, h.Config.TableURL)
		if err != nil {
			return nil, err
		}
		logger.Debug("fetched table", "url", h.Config.TableURL, "entries", len(remote))
		table = table.Merge(remote)
	}
	return table, nil
}

// ResolveOptions builds the resolver options for the extension under test.
func (h *Helper) ResolveOptions() (resolver.Options, error) {
	seed, err := h.Config.Seed()
	if err != nil {
		return resolver.Options{}, err
	}
	return resolver.Options{
		MediaWikiVersion: h.Config.MediaWikiVersion,
		Seed:             seed,
		Corrections:      h.Config.Corrections,
		Exclusions:       h.Config.Exclusions,
		Logger:           h.Config.Logger.Named("resolver"),
	}, nil
}
