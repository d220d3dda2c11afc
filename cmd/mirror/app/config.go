package app

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/mirror/internal/cmd/comparison"
	"github.com/agentstation/mirror/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "MIRROR"

// Config holds the application configuration loaded from flags, the
// environment, .env files and the profile file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Comparison defaults from the profile
	Comparison comparison.Settings

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (MIRROR_*)
// 3. .env files
// 4. Profile file (path, or ./.mirror.yaml then ~/.mirror.yaml)
// 5. Defaults
func LoadConfig(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapIO("read", path, err)
		}
	} else {
		v.SetConfigName(".mirror")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		// a missing profile is fine
		_ = v.ReadInConfig()
	}

	score, err := scoreEntries(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color"),
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),
		Comparison: comparison.Settings{
			Ground:      v.GetString("ground"),
			Mirror:      v.GetString("mirror"),
			Keys:        v.GetStringSlice("keys"),
			Score:       score,
			Label:       v.GetString("label"),
			Concurrency: v.GetInt("concurrency"),
			MetricsFile: v.GetString("metrics_file"),
		},
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// scoreEntries reads the score setting either as a list of
// field=strategy[,strategy] entries or as a field to strategies mapping.
func scoreEntries(v *viper.Viper) ([]string, error) {
	raw := v.Get("score")
	if raw == nil {
		return nil, nil
	}
	if _, ok := raw.(map[string]any); !ok {
		return v.GetStringSlice("score"), nil
	}

	mapping := v.GetStringMapStringSlice("score")
	fields := make([]string, 0, len(mapping))
	for field := range mapping {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	entries := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(mapping[field]) == 0 {
			return nil, errors.Configf("profile", "field %q has an empty strategy list", field)
		}
		entries = append(entries, fmt.Sprintf("%s=%s", field, strings.Join(mapping[field], ",")))
	}
	return entries, nil
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
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is read first so its values win; godotenv never overrides
// a variable that is already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
