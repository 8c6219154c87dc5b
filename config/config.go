package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// defaultSessionKey is only suitable for local development.
const defaultSessionKey = "versetrack-insecure-dev-key"

// Config holds the configuration for the versetrack server.
type Config struct {
	// Listen is the address the server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// Database holds the backing store configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Session holds the cookie session configuration.
	Session *SessionConfig `yaml:"session" mapstructure:"session"`
	// Admin holds the bootstrap admin identity.
	Admin *AdminConfig `yaml:"admin" mapstructure:"admin"`
}

// DatabaseConfig selects the backing relational store.
type DatabaseConfig struct {
	// URL is a postgres connection string. When empty, the embedded
	// sqlite store at Path is used instead.
	URL string `yaml:"url" mapstructure:"url"`
	// Path is the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// SessionConfig holds the cookie session configuration.
type SessionConfig struct {
	// Key is the key used to encrypt session data.
	Key string `yaml:"key" mapstructure:"key"`
	// MaxAge is the maximum age of a session in seconds.
	MaxAge int `yaml:"max_age" mapstructure:"max_age"`
}

// AdminConfig holds the bootstrap admin identity. The account is created
// on startup if absent, or upgraded to admin if it exists without the flag.
type AdminConfig struct {
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
}

// Load reads the configuration from the specified path and returns a
// Config struct. If path is empty, common locations are searched and
// defaults are used when no file is found.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("VERSETRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.versetrack")
		v.AddConfigPath("/etc/versetrack")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3000")

	v.SetDefault("database.url", "")
	v.SetDefault("database.path", "versetrack.db")

	v.SetDefault("session.key", defaultSessionKey)
	v.SetDefault("session.max_age", 172800) // 48 hours

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "zynqochka")
}

func validateConfig(c *Config) error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Database == nil || (c.Database.URL == "" && c.Database.Path == "") {
		return fmt.Errorf("either a database URL or a database path is required")
	}
	if c.Session == nil || c.Session.Key == "" {
		return fmt.Errorf("session key is required")
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("session max age must be positive")
	}
	if c.Admin == nil || c.Admin.Username == "" || c.Admin.Password == "" {
		return fmt.Errorf("admin username and password are required")
	}

	if c.Session.Key == defaultSessionKey {
		log.Warn("using the default session key, set session.key in production")
	}

	return nil
}
