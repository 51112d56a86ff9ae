package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	configFileBase    = "escalas_config"
	defaultListenAddr = ":8080"
	defaultUpcoming   = 8
)

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`
	// PublicDatabaseURL is an optional read-only credential used by the public roster
	PublicDatabaseURL string `yaml:"publicDatabaseURL,omitempty"`

	ListenAddr     string   `yaml:"listenAddr,omitempty"`
	AuthorToken    string   `yaml:"authorToken,omitempty" validate:"omitempty,min=16"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty" validate:"dive,url|eq=*"`

	PublishSheetID        string `yaml:"publishSheetID,omitempty"`
	GoogleCredentialsFile string `yaml:"googleCredentialsFile,omitempty" validate:"required_with=PublishSheetID"`

	// ServiceWeeks is the recurrence rule of roster weeks
	ServiceWeeks  string `yaml:"serviceWeeks,omitempty"`
	UpcomingWeeks int    `yaml:"upcomingWeeks,omitempty" validate:"omitempty,min=1,max=52"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from escalas_config.yaml
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads escalas_config.<env>.yaml, falling back to escalas_config.yaml.
// Files are looked up in the current directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.UpcomingWeeks == 0 {
		c.UpcomingWeeks = defaultUpcoming
	}
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.ServiceWeeks != "" {
		if _, err := rrule.StrToRRule(cfg.ServiceWeeks); err != nil {
			return fmt.Errorf("invalid rrule in serviceWeeks: %w", err)
		}
	}

	return nil
}

// ReadOnlyDatabaseURL returns the connection string for the public roster
func (c *Config) ReadOnlyDatabaseURL() string {
	if c.PublicDatabaseURL != "" {
		return c.PublicDatabaseURL
	}
	return c.DatabaseURL
}

// findConfigFile searches the current directory and then the home directory.
// For a non-empty env, escalas_config.<env>.yaml wins over escalas_config.yaml.
func findConfigFile(env string) (string, error) {
	var candidates []string
	if env != "" {
		candidates = append(candidates, configFileBase+"."+env+".yaml")
	}
	candidates = append(candidates, configFileBase+".yaml")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
		homeConfigPath := filepath.Join(homeDir, name)
		if _, err := os.Stat(homeConfigPath); err == nil {
			return homeConfigPath, nil
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
