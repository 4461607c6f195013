// Package config loads injectlogin settings from defaults, an optional
// injectlogin.toml, INJECTLOGIN_* environment variables and CLI flags.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/mpyw/injectlogin/internal/loader"
	"github.com/mpyw/injectlogin/internal/naming"
)

// FileName is the project config file searched for by Find.
const FileName = "injectlogin.toml"

// EnvPrefix prefixes environment overrides, e.g. INJECTLOGIN_NAMING_PREFIX.
const EnvPrefix = "INJECTLOGIN"

// Config is the resolved generator configuration.
type Config struct {
	Patterns []string `mapstructure:"patterns"`
	// Output is the directory the namespace directory is created in.
	Output string `mapstructure:"output"`
	// Namespace is the directory name of the generated package. The package
	// clause is always "injectlogin".
	Namespace  string       `mapstructure:"namespace"`
	Naming     NamingConfig `mapstructure:"naming"`
	Tests      bool         `mapstructure:"tests"`
	BuildFlags []string     `mapstructure:"build_flags"`
	Log        LogConfig    `mapstructure:"log"`
}

// NamingConfig overrides parts of the generated type name.
type NamingConfig struct {
	Prefix    string `mapstructure:"prefix"`
	Separator string `mapstructure:"separator"`
	Suffix    string `mapstructure:"suffix"`
}

// LogConfig controls logging.
type LogConfig struct {
	JSON      bool `mapstructure:"json"`
	Verbosity int  `mapstructure:"verbosity"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	conv := naming.DefaultConvention()

	v.SetDefault("patterns", []string{"./..."})
	v.SetDefault("output", ".")
	v.SetDefault("namespace", "injectlogin")
	v.SetDefault("naming.prefix", conv.Prefix)
	v.SetDefault("naming.separator", conv.Separator)
	v.SetDefault("naming.suffix", conv.Suffix)
	v.SetDefault("tests", false)
	v.SetDefault("build_flags", []string{})
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	return v
}

// Load reads configPath, or the nearest injectlogin.toml at or above dir
// when configPath is empty, into v and unmarshals the result. A missing
// project file is not an error.
func Load(v *viper.Viper, configPath, dir string) (*Config, error) {
	if configPath == "" {
		configPath = Find(dir)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")

		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

// Find walks up from dir looking for injectlogin.toml and returns its path,
// or "" if there is none.
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Convention returns the naming convention.
func (c *Config) Convention() naming.Convention {
	return naming.Convention{
		Prefix:    c.Naming.Prefix,
		Separator: c.Naming.Separator,
		Suffix:    c.Naming.Suffix,
	}
}

// OutputDir returns the directory generated files are written to.
func (c *Config) OutputDir() string {
	return filepath.Join(c.Output, c.Namespace)
}

// LoaderConfig returns the package loading settings rooted at dir.
func (c *Config) LoaderConfig(dir string) loader.Config {
	return loader.Config{
		Dir:        dir,
		Tests:      c.Tests,
		BuildFlags: c.BuildFlags,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Patterns) == 0 {
		return errors.New("patterns cannot be empty")
	}

	if c.Output == "" {
		return errors.New("output cannot be empty")
	}

	if c.Namespace == "" || strings.ContainsAny(c.Namespace, `/\`) {
		return errors.Newf("namespace must be a single directory name, got %q", c.Namespace)
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	if err := c.Convention().Validate(); err != nil {
		return errors.Wrap(err, "invalid naming")
	}

	return nil
}
