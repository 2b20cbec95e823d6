package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

const (
	DefaultHost       = "localhost"
	DefaultPort       = 3000
	DefaultMeiliHost  = "http://localhost:7700"
	DefaultMeiliIndex = "pages"
)

type Config struct {
	Host     string         `toml:"host"`
	Port     int            `toml:"port"`
	DataDir  string         `toml:"data_dir"`
	Provider ProviderConfig `toml:"provider"`
	Meili    MeiliConfig    `toml:"meili"`
	Search   SearchConfig   `toml:"search"`
}

// ProviderConfig holds the remote search provider settings. The key stays
// server-side; clients only ever talk to the proxy endpoint. Name selects
// the resolver's remote source ("serper" or "duckduckgo"); when empty the
// keyed provider wins if a key is present.
type ProviderConfig struct {
	Name     string `toml:"name,omitempty"`
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint,omitempty"`
}

type MeiliConfig struct {
	Host   string `toml:"host"`
	APIKey string `toml:"api_key"`
	Index  string `toml:"index"`
}

type SearchConfig struct {
	ResultsPerPage int `toml:"results_per_page"`
	CacheSize      int `toml:"cache_size"`
	HistorySize    int `toml:"history_size"`
}

func GetDefaultConfig() (*Config, error) {
	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("getting default data directory: %w", err)
	}
	return &Config{
		Host:    DefaultHost,
		Port:    DefaultPort,
		DataDir: dataDir,
		Meili: MeiliConfig{
			Host:  DefaultMeiliHost,
			Index: DefaultMeiliIndex,
		},
		Search: SearchConfig{
			ResultsPerPage: 10,
			CacheSize:      50,
			HistorySize:    20,
		},
	}, nil
}

// LoadConfig reads configPath, fills defaults for missing values and
// applies environment overrides. A missing file yields the default
// configuration, so the server runs without any setup.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config, err := GetDefaultConfig()
		if err != nil {
			return nil, err
		}
		config.applyEnv()
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.Host == "" {
		config.Host = DefaultHost
	}
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.DataDir == "" {
		dataDir, err := GetDefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("getting default data directory: %w", err)
		}
		config.DataDir = dataDir
	}
	if config.Meili.Host == "" {
		config.Meili.Host = DefaultMeiliHost
	}
	if config.Meili.Index == "" {
		config.Meili.Index = DefaultMeiliIndex
	}
	if config.Search.ResultsPerPage == 0 {
		config.Search.ResultsPerPage = 10
	}
	if config.Search.CacheSize == 0 {
		config.Search.CacheSize = 50
	}
	if config.Search.HistorySize == 0 {
		config.Search.HistorySize = 20
	}

	config.applyEnv()
	return &config, nil
}

// applyEnv layers environment variables over file values. The variable
// names match the original deployment's, so existing setups keep working.
func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			c.Port = n
		}
	}
	if key := os.Getenv("D1KS_PROVIDER_API_KEY"); key != "" {
		c.Provider.APIKey = key
	} else if key := os.Getenv("SERPER_API_KEY"); key != "" {
		c.Provider.APIKey = key
	}
	if host := os.Getenv("MEILI_HOST"); host != "" {
		c.Meili.Host = host
	}
	if key := os.Getenv("MEILI_MASTER_KEY"); key != "" {
		c.Meili.APIKey = key
	} else if key := os.Getenv("MEILI_KEY"); key != "" {
		c.Meili.APIKey = key
	}
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the annotated sample config, with the data_dir
// placeholder replaced by the real default path.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dataDir := c.DataDir
	if dataDir == "" {
		var err error
		dataDir, err = GetDefaultDataDir()
		if err != nil {
			return fmt.Errorf("getting default data directory: %w", err)
		}
	}

	template := strings.Replace(configTemplate, "/home/user/.local/share/d1ks", dataDir, 1)
	return os.WriteFile(configPath, []byte(template), 0644)
}

// GetDefaultDataDir returns the directory for the state database
func GetDefaultDataDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "d1ks")

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", appDir, err)
	}

	return appDir, nil
}

// GetConfigDir returns the configuration directory for d1ks
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	appConfigDir := filepath.Join(configDir, "d1ks")

	if err := os.MkdirAll(appConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", appConfigDir, err)
	}

	return appConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
