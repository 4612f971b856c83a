package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/readmesync/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by readmesync.
const EnvPrefix = "READMESYNC"

// ConfigName is the config file base name searched in the working and
// home directories.
const ConfigName = ".readmesync"

// Load builds the configuration in order of precedence:
// 1. Environment variables (READMESYNC_*, GITHUB_TOKEN)
// 2. .env files
// 3. Config file (explicit path, or .readmesync.yaml in . or ~)
// 4. Defaults
//
// Command-line flags are applied on top by the caller.
func Load(configFile string) (*Config, error) {
	loadEnvFiles()

	v := New()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "failed to read "+configFile, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "failed to read config file", err)
			}
		}
	}

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New returns a viper instance with defaults and environment bindings.
// Each call returns an independent instance.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// the token also honours the conventional GitHub variable
	_ = v.BindEnv("token", EnvPrefix+"_TOKEN", "GITHUB_TOKEN")

	d := Default()
	v.SetDefault("graphql_endpoint", d.GraphQLEndpoint)
	v.SetDefault("feed_url", d.FeedURL)
	v.SetDefault("til_url", d.TILURL)
	v.SetDefault("readme_path", d.ReadmePath)
	v.SetDefault("releases_path", d.ReleasesPath)
	v.SetDefault("contribs_path", d.ContribsPath)
	v.SetDefault("sections", []string{})
	v.SetDefault("blog_limit", d.BlogLimit)
	v.SetDefault("release_limit", d.ReleaseLimit)
	v.SetDefault("til_limit", d.TILLimit)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("max_pages", d.MaxPages)
	v.SetDefault("http_timeout", d.HTTPTimeout)
	v.SetDefault("requests_per_second", d.RequestsPerSecond)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_output", d.LogOutput)

	return v
}

// FromViper reads a Config out of v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Token:             v.GetString("token"),
		GraphQLEndpoint:   v.GetString("graphql_endpoint"),
		FeedURL:           v.GetString("feed_url"),
		TILURL:            v.GetString("til_url"),
		ReadmePath:        v.GetString("readme_path"),
		ReleasesPath:      v.GetString("releases_path"),
		ContribsPath:      v.GetString("contribs_path"),
		Sections:          normalizeSections(v.GetStringSlice("sections")),
		BlogLimit:         v.GetInt("blog_limit"),
		ReleaseLimit:      v.GetInt("release_limit"),
		TILLimit:          v.GetInt("til_limit"),
		PageSize:          v.GetInt("page_size"),
		MaxPages:          v.GetInt("max_pages"),
		HTTPTimeout:       v.GetDuration("http_timeout"),
		RequestsPerSecond: v.GetFloat64("requests_per_second"),
		UserAgent:         v.GetString("user_agent"),
		LogLevel:          v.GetString("log_level"),
		LogFormat:         v.GetString("log_format"),
		LogOutput:         v.GetString("log_output"),
		ConfigFile:        v.ConfigFileUsed(),
	}
}

// loadEnvFiles loads .env.local and .env. Values in .env.local win over
// .env, and variables already set in the environment win over both.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// normalizeSections accepts both YAML lists and comma separated values.
func normalizeSections(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, s := range strings.Split(item, ",") {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
