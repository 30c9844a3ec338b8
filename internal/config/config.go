package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "ARTICLE_REPORT"
)

type Config struct {
	Theme struct {
		Dark        bool   `mapstructure:"dark"`
		AccentColor string `mapstructure:"accent_color"`
	} `mapstructure:"theme"`
	Behavior struct {
		FetchTimeout       time.Duration `mapstructure:"fetch_timeout"`
		MaxArticlesPerFeed int           `mapstructure:"max_articles_per_feed"`
		DefaultPageSize    int           `mapstructure:"default_page_size"`
	} `mapstructure:"behavior"`
	Display struct {
		CompactView      bool   `mapstructure:"compact_view"`
		ShowTime         bool   `mapstructure:"show_time"`
		TimeLayout       string `mapstructure:"time_layout"`
		MagnitudeSection bool   `mapstructure:"magnitude_section"`
		SplitLocation    bool   `mapstructure:"split_location"`
		LocationFallback string `mapstructure:"location_fallback"`
	} `mapstructure:"display"`
	Keyboard struct {
		NextPage    string `mapstructure:"next_page"`
		PrevPage    string `mapstructure:"prev_page"`
		OpenArticle string `mapstructure:"open_article"`
		Back        string `mapstructure:"back"`
	} `mapstructure:"keyboard"`
	Sheets struct {
		SpreadsheetID string `mapstructure:"spreadsheet_id"`
		FolderID      string `mapstructure:"folder_id"`
	} `mapstructure:"sheets"`
	Log struct {
		Level       string `mapstructure:"level"`
		Development bool   `mapstructure:"development"`
	} `mapstructure:"log"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	cfg := &Config{}
	cfg.Theme.Dark = true
	cfg.Theme.AccentColor = "#2DA44E"
	cfg.Behavior.FetchTimeout = 15 * time.Second
	cfg.Behavior.MaxArticlesPerFeed = 50
	cfg.Behavior.DefaultPageSize = 10
	cfg.Display.TimeLayout = "3:04 PM"
	cfg.Display.LocationFallback = "Near the"
	cfg.Keyboard.NextPage = "n"
	cfg.Keyboard.PrevPage = "p"
	cfg.Keyboard.OpenArticle = "o"
	cfg.Keyboard.Back = "b"
	cfg.Log.Level = "warn"
	return cfg
}

func (c *Config) settings() map[string]any {
	return map[string]any{
		"theme.dark":                     c.Theme.Dark,
		"theme.accent_color":             c.Theme.AccentColor,
		"behavior.fetch_timeout":         c.Behavior.FetchTimeout.String(),
		"behavior.max_articles_per_feed": c.Behavior.MaxArticlesPerFeed,
		"behavior.default_page_size":     c.Behavior.DefaultPageSize,
		"display.compact_view":           c.Display.CompactView,
		"display.show_time":              c.Display.ShowTime,
		"display.time_layout":            c.Display.TimeLayout,
		"display.magnitude_section":      c.Display.MagnitudeSection,
		"display.split_location":         c.Display.SplitLocation,
		"display.location_fallback":      c.Display.LocationFallback,
		"keyboard.next_page":             c.Keyboard.NextPage,
		"keyboard.prev_page":             c.Keyboard.PrevPage,
		"keyboard.open_article":          c.Keyboard.OpenArticle,
		"keyboard.back":                  c.Keyboard.Back,
		"sheets.spreadsheet_id":          c.Sheets.SpreadsheetID,
		"sheets.folder_id":               c.Sheets.FolderID,
		"log.level":                      c.Log.Level,
		"log.development":                c.Log.Development,
	}
}

// LoadConfig reads config.yaml from dataDir and ARTICLE_REPORT_* environment
// variables (including those in a .env file) on top of Default. A missing
// config file or .env is not an error.
func LoadConfig(dataDir string) (*Config, error) {
	for _, envFile := range []string{".env", filepath.Join(dataDir, ".env")} {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range Default().settings() {
		v.SetDefault(key, value)
	}

	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if cfg.Behavior.DefaultPageSize <= 0 {
		return nil, fmt.Errorf("behavior.default_page_size must be positive, got %d", cfg.Behavior.DefaultPageSize)
	}

	return cfg, nil
}

// SaveConfig writes cfg to config.yaml in dataDir.
func SaveConfig(dataDir string, cfg *Config) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	v := viper.New()
	for key, value := range cfg.settings() {
		v.Set(key, value)
	}

	path := filepath.Join(dataDir, fileName+"."+fileType)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	return nil
}
