package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/muhammadmuzzammil1998/jsonc"
	"github.com/pkg/errors"
	"mwdeps/internal/deptable"
)

// ProjectConfigFile is read from the working directory.
const ProjectConfigFile = ".mwdeps.json"

// FileConfig is the content of a user or project config file. Comments are
// allowed.
type FileConfig struct {
	// Table is a dependency table file merged over the built-in table
	Table string `json:"table,omitempty"`
	// TableURL is fetched and merged over the built-in table
	TableURL string `json:"tableUrl,omitempty"`
	// DependenciesFile replaces the default "dependencies" file
	DependenciesFile string `json:"dependenciesFile,omitempty"`
	// Exclude adds exclusion patterns
	Exclude []string `json:"exclude,omitempty"`
	// Corrections adds corrections to the built-in ones
	Corrections []deptable.Correction `json:"corrections,omitempty"`
}

// ReadConfigFile reads a config file at a path. A missing file yields an empty
// config and no error.
func ReadConfigFile(path string) (*FileConfig, error) {
	config := &FileConfig{}
	if path == "" {
		return config, nil
	}
	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %v", path)
	}
	if err := jsonc.Unmarshal(b, config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %v", path)
	}
	return config, nil
}

// UserConfigPath returns the user config file location, or "" when none exists.
func UserConfigPath() string {
	path, err := xdg.SearchConfigFile(filepath.Join("mwdeps", "config.json"))
	if err != nil {
		return ""
	}
	return path
}

// merge overlays the non-empty fields of other onto fc.
func (fc *FileConfig) merge(other *FileConfig) {
	if other.Table != "" {
		fc.Table = other.Table
	}
	if other.TableURL != "" {
		fc.TableURL = other.TableURL
	}
	if other.DependenciesFile != "" {
		fc.DependenciesFile = other.DependenciesFile
	}
	fc.Exclude = append(fc.Exclude, other.Exclude...)
	fc.Corrections = append(fc.Corrections, other.Corrections...)
}
