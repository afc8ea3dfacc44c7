package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "MENUMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Sources
	Archive      string
	Markup       string
	MarkupMember string
	Transcript   string
	Prices       string

	// Outputs
	Catalog string
	Assets  string

	// Archive name repair
	LegacyEncoding   string
	RegionalEncoding string

	// Matching thresholds
	PrefixLength       int
	CatalogMinOverlap  int
	CategoryMinOverlap int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (MENUMAP_ prefix)
// 3. .env files
// 4. Config file (configFile, or .menumap.yaml in $HOME or .)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".menumap")

		// A missing default config file is fine
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "reading .menumap.yaml", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Archive:      v.GetString("sources.archive"),
		Markup:       v.GetString("sources.markup"),
		MarkupMember: v.GetString("sources.markup_member"),
		Transcript:   v.GetString("sources.transcript"),
		Prices:       v.GetString("sources.prices"),

		Catalog: v.GetString("output.catalog"),
		Assets:  v.GetString("output.assets"),

		LegacyEncoding:   v.GetString("archive.legacy_encoding"),
		RegionalEncoding: v.GetString("archive.regional_encoding"),

		PrefixLength:       v.GetInt("match.prefix_length"),
		CatalogMinOverlap:  v.GetInt("match.catalog_min_overlap"),
		CategoryMinOverlap: v.GetInt("match.category_min_overlap"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return config, nil
}

// setDefaults registers the default of every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("sources.archive", constants.DefaultArchive)
	v.SetDefault("sources.markup", "")
	v.SetDefault("sources.markup_member", constants.DefaultMarkupMember)
	v.SetDefault("sources.transcript", "")
	v.SetDefault("sources.prices", "")

	v.SetDefault("output.catalog", constants.DefaultCatalog)
	v.SetDefault("output.assets", constants.DefaultAssetsDir)

	v.SetDefault("archive.legacy_encoding", constants.DefaultLegacyEncoding)
	v.SetDefault("archive.regional_encoding", constants.DefaultRegionalEncoding)

	v.SetDefault("match.prefix_length", constants.DefaultPrefixLength)
	v.SetDefault("match.catalog_min_overlap", constants.CatalogMinOverlap)
	v.SetDefault("match.category_min_overlap", constants.CategoryMinOverlap)

	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	switch {
	case logLevel != "":
		c.LogLevel = logLevel
	case verbose || quiet:
		// Shortcut flags beat a level from the environment or config file
		c.LogLevel = ""
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}
