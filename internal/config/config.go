package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/kelseyhightower/envconfig"
	"mwdeps/internal/deptable"
	"mwdeps/internal/resolver"
)

const (
	// EnvLogLevel is the environment log level
	EnvLogLevel = "MWDEPS_LOG_LEVEL"
)

// Config is populated once at startup from config files, the environment and
// command line flags, in increasing order of precedence.
type Config struct {
	Logger hclog.Logger

	// Version of mwdeps
	Version string
	// MediaWikiVersion is the MediaWiki branch under test, e.g. REL1_35
	MediaWikiVersion string
	// Dependencies is the comma separated direct dependency list. nil means unset,
	// in which case DependenciesFile is read.
	Dependencies *string
	// DependenciesFile lists one direct dependency per line
	DependenciesFile string
	// Table is a dependency table file merged over the built-in table
	Table string
	// TableURL is a dependency table fetched over HTTP and merged over the
	// built-in table
	TableURL string
	// NoDefaultTable skips the built-in table
	NoDefaultTable bool
	// Exclusions are glob patterns of dependencies that are never printed
	Exclusions []string
	// Corrections are applied to the table for matching MediaWiki versions
	Corrections []deptable.Correction
}

// envConfig lists the environment variables read at startup.
type envConfig struct {
	MediaWikiVersion string   `envconfig:"MEDIAWIKI_VERSION"`
	Dependencies     *string  `envconfig:"DEPENDENCIES"`
	DependenciesFile string   `envconfig:"MWDEPS_DEPENDENCIES_FILE"`
	Table            string   `envconfig:"MWDEPS_TABLE"`
	TableURL         string   `envconfig:"MWDEPS_TABLE_URL"`
	Exclude          []string `envconfig:"MWDEPS_EXCLUDE"`
}

// ParseAndValidate parses config files, env vars and the global flags. Flags
// override env vars, env vars override the project config file, which overrides
// the user config file.
func ParseAndValidate(args []string, version string) (*Config, error) {
	return parse(args, version, UserConfigPath(), ProjectConfigFile, os.Stderr)
}

func parse(args []string, version string, userConfigPath string, projectConfigPath string, logOutput io.Writer) (*Config, error) {
	fileConfig, err := ReadConfigFile(userConfigPath)
	if err != nil {
		return nil, err
	}
	projectConfig, err := ReadConfigFile(projectConfigPath)
	if err != nil {
		return nil, err
	}
	fileConfig.merge(projectConfig)

	var env envConfig
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("invalid environment variable: %w", err)
	}

	c := &Config{
		Version:          version,
		MediaWikiVersion: env.MediaWikiVersion,
		Dependencies:     env.Dependencies,
		DependenciesFile: firstNonEmpty(env.DependenciesFile, fileConfig.DependenciesFile, resolver.DefaultDependenciesFile),
		Table:            firstNonEmpty(env.Table, fileConfig.Table),
		TableURL:         firstNonEmpty(env.TableURL, fileConfig.TableURL),
		Corrections:      append(append([]deptable.Correction{}, deptable.DefaultCorrections...), fileConfig.Corrections...),
	}
	exclusions := append([]string{}, resolver.DefaultExclusions...)
	exclusions = append(exclusions, fileConfig.Exclude...)
	exclusions = append(exclusions, env.Exclude...)

	// Determine our log level if we have any. First override we check if env var
	level := hclog.NoLevel
	if v := os.Getenv(EnvLogLevel); v != "" {
		level = hclog.LevelFromString(v)
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("%s value %q is not a valid log level", EnvLogLevel, v)
		}
	}

	// Process arguments looking for `-v` flags to control the log level.
	// This overrides whatever the env var set.
	for _, arg := range args {
		switch {
		case arg == "-v":
			if level == hclog.NoLevel || level > hclog.Info {
				level = hclog.Info
			}
		case arg == "-vv":
			if level == hclog.NoLevel || level > hclog.Debug {
				level = hclog.Debug
			}
		case arg == "-vvv":
			if level == hclog.NoLevel || level > hclog.Trace {
				level = hclog.Trace
			}
		case strings.HasPrefix(arg, "--mediawiki-version="):
			c.MediaWikiVersion = arg[len("--mediawiki-version="):]
		case strings.HasPrefix(arg, "--dependencies="):
			deps := arg[len("--dependencies="):]
			c.Dependencies = &deps
		case strings.HasPrefix(arg, "--dependencies-file="):
			c.DependenciesFile = arg[len("--dependencies-file="):]
		case strings.HasPrefix(arg, "--table="):
			c.Table = arg[len("--table="):]
		case strings.HasPrefix(arg, "--table-url="):
			tableURL := arg[len("--table-url="):]
			if _, err := url.ParseRequestURI(tableURL); err != nil {
				return nil, fmt.Errorf("%s is an invalid URL", tableURL)
			}
			c.TableURL = tableURL
		case arg == "--no-default-table":
			c.NoDefaultTable = true
		case strings.HasPrefix(arg, "--exclude="):
			exclusions = append(exclusions, arg[len("--exclude="):])
		}
	}
	c.Exclusions = exclusions

	if c.DependenciesFile == "" {
		return nil, fmt.Errorf("the dependencies file path must not be empty")
	}
	if c.NoDefaultTable && c.Table == "" && c.TableURL == "" {
		return nil, fmt.Errorf("--no-default-table requires --table or --table-url")
	}

	// Default output is nowhere unless we enable logging.
	var output io.Writer = ioutil.Discard
	color := hclog.ColorOff
	if level != hclog.NoLevel {
		output = logOutput
		// hclog can only color terminals backed by a file.
		if _, ok := logOutput.(*os.File); ok {
			color = hclog.AutoColor
		}
	}

	c.Logger = hclog.New(&hclog.LoggerOptions{
		Name:   "mwdeps",
		Level:  level,
		Color:  color,
		Output: output,
	})

	return c, nil
}

// IsGlobalFlag reports whether arg is handled by ParseAndValidate, so commands
// can skip it while parsing their own flags.
func IsGlobalFlag(arg string) bool {
	switch arg {
	case "-v", "-vv", "-vvv", "--no-default-table":
		return true
	}
	for _, prefix := range []string{"--mediawiki-version=", "--dependencies=", "--dependencies-file=", "--table=", "--table-url=", "--exclude="} {
		if strings.HasPrefix(arg, prefix) {
			return true
		}
	}
	return false
}

// Seed returns the direct dependencies of the extension under test.
func (c *Config) Seed() ([]string, error) {
	return resolver.Seed(c.Dependencies, c.DependenciesFile)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
