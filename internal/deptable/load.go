package deptable

import (
	_ "embed"
	"fmt"
	"io/ioutil"
	"path"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/muhammadmuzzammil1998/jsonc"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a table file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

//go:embed default.yaml
var defaultTable []byte

// Default returns the table shipped with mwdeps, a snapshot of the dependency map
// Wikimedia CI uses for Quibble jobs.
func Default() Table {
	t, err := Parse(defaultTable, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded dependency table is invalid: %v", err))
	}
	return t
}

// FormatFromPath picks a format from the file extension of p. Unknown extensions
// are read as YAML.
func FormatFromPath(p string) Format {
	switch strings.ToLower(path.Ext(p)) {
	case ".toml":
		return FormatTOML
	case ".json", ".jsonc":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Parse decodes a table in the given format.
func Parse(data []byte, format Format) (Table, error) {
	t := Table{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &t)
	case FormatTOML:
		err = toml.Unmarshal(data, &t)
	case FormatJSON:
		err = jsonc.Unmarshal(data, &t)
	default:
		return nil, fmt.Errorf("unknown table format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %v dependency table", format)
	}
	return t, nil
}

// Load reads a table file. A leading ~ is expanded to the home directory.
func Load(p string) (Table, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid table path %v", p)
	}
	data, err := ioutil.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dependency table %v", expanded)
	}
	return Parse(data, FormatFromPath(expanded))
}
