// Package config resolves verbump settings from flags, VERBUMP_* environment
// variables, an optional .verbump.yaml file and built-in defaults, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/3leaps/verbump/internal/cache"
	"github.com/3leaps/verbump/internal/manifest"
	"github.com/3leaps/verbump/internal/registry"
	"github.com/3leaps/verbump/pkg/bump"
)

const (
	EnvPrefix = "VERBUMP"
	FileName  = ".verbump"

	SourceCommand = "command"
	SourceGitHub  = "github"
)

// Config holds all verbump settings. Keys match the long flag names.
type Config struct {
	Manifest         string        `mapstructure:"manifest"`
	Cache            string        `mapstructure:"cache"`
	Package          string        `mapstructure:"package"`
	Source           string        `mapstructure:"source"`
	Command          string        `mapstructure:"command"`
	GitHubAPI        string        `mapstructure:"github-api"`
	Comparator       string        `mapstructure:"comparator"`
	Timeout          time.Duration `mapstructure:"timeout"`
	ValidateManifest bool          `mapstructure:"validate-manifest"`
	ManifestKey      string        `mapstructure:"manifest-key"`
	Init             bool          `mapstructure:"init"`
	DryRun           bool          `mapstructure:"dry-run"`
	Verbose          bool          `mapstructure:"verbose"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Defaults returns the fixed AVRIO paths and the pio command.
func Defaults() Config {
	return Config{
		Manifest:   manifest.DefaultPath,
		Cache:      cache.DefaultPath,
		Package:    registry.DefaultPackage,
		Source:     SourceCommand,
		Command:    strings.Join(registry.DefaultCommand, " "),
		Comparator: string(bump.Lexical),
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("cache", d.Cache)
	v.SetDefault("package", d.Package)
	v.SetDefault("source", d.Source)
	v.SetDefault("command", d.Command)
	v.SetDefault("github-api", d.GitHubAPI)
	v.SetDefault("comparator", d.Comparator)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("validate-manifest", false)
	v.SetDefault("manifest-key", "")
	v.SetDefault("init", false)
	v.SetDefault("dry-run", false)
	v.SetDefault("verbose", false)
}

// Load merges flags, environment, the config file (explicit path, or
// .verbump.yaml in dir when file is empty) and defaults. A missing implicit
// config file is not an error.
func Load(flags *pflag.FlagSet, file, dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, cfg.Validate()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Manifest) == "" {
		problems = append(problems, "manifest: missing")
	}
	if strings.TrimSpace(c.Package) == "" {
		problems = append(problems, "package: missing")
	}
	switch c.Source {
	case SourceCommand:
		if len(strings.Fields(c.Command)) == 0 {
			problems = append(problems, "command: missing")
		}
	case SourceGitHub:
	default:
		problems = append(problems, fmt.Sprintf("source: unsupported %q (supported: %s, %s)", c.Source, SourceCommand, SourceGitHub))
	}
	if _, err := bump.ParseComparator(c.Comparator); err != nil {
		problems = append(problems, "comparator: "+err.Error())
	}
	if c.Timeout < 0 {
		problems = append(problems, fmt.Sprintf("timeout: must be >= 0 (got %s)", c.Timeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// CommandArgs splits Command on whitespace.
func (c Config) CommandArgs() []string {
	return strings.Fields(c.Command)
}
