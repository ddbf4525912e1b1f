package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/gpumap/pkg/constants"
	"github.com/agentstation/gpumap/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Catalog directory; empty uses the embedded catalog
	CatalogPath string

	// Import database
	DatabaseURL string

	// Logging configuration. LogLevel is the explicit --log-level flag,
	// EnvLogLevel the LOG_LEVEL variable or log_level config key.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (configFile, or ~/.gpumap.yaml and ./.gpumap.yaml)
//  5. Defaults
//
// A missing default config file is not an error; an explicit one is.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)

		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	config := &Config{
		NoColor:     v.GetBool("no_color"),
		ConfigFile:  v.ConfigFileUsed(),
		CatalogPath: expandHome(v.GetString("catalog_path")),
		DatabaseURL: v.GetString("database_url"),
		EnvLogLevel: v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
	}

	return config, nil
}

// bindEnv binds config keys to the environment variables that set them.
func bindEnv(v *viper.Viper) {
	bindings := map[string][]string{
		"catalog_path": {constants.EnvPrefix + "_CATALOG_PATH"},
		"database_url": {constants.EnvPrefix + "_DATABASE_URL", "DATABASE_URL"},
		"log_level":    {"LOG_LEVEL"},
		"log_format":   {"LOG_FORMAT"},
		"log_output":   {"LOG_OUTPUT"},
		"no_color":     {"NO_COLOR"},
	}
	for key, envs := range bindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// mergeFile takes values from a config file for every setting whose flag
// was not given on the command line.
func (c *Config) mergeFile(file *Config, flags *pflag.FlagSet) {
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	c.ConfigFile = file.ConfigFile
	if !changed("catalog") && file.CatalogPath != "" {
		c.CatalogPath = file.CatalogPath
	}
	if !changed("database-url") && file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
	}
	if !changed("no-color") && file.NoColor {
		c.NoColor = true
	}
	if file.EnvLogLevel != "" {
		c.EnvLogLevel = file.EnvLogLevel
	}
	c.LogFormat = file.LogFormat
	c.LogOutput = file.LogOutput
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overwritten.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
