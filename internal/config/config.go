package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/spf13/viper"
)

// Defaults applied before any config file or environment variable.
const (
	DefaultAPIURL       = "http://127.0.0.1:5000/api"
	DefaultAPITimeout   = 15 * time.Second
	DefaultDatabasePath = "$HOME/.local/share/tally/tally.db"
	DefaultLogFile      = "$HOME/.local/share/tally/tally.log"
	DefaultCurrency     = "Rs"
	DefaultTokenFile    = "$HOME/.config/tally/sheets-token.json"
)

// Config is the resolved application configuration.
type Config struct {
	Sheets       SheetsConfig
	APIURL       string
	DatabasePath string
	Currency     string
	Theme        string
	LogLevel     string
	LogFormat    string
	LogFile      string
	APITimeout   time.Duration
}

// SheetsConfig holds credentials and the target for `tally export sheets`.
type SheetsConfig struct {
	ServiceAccountPath string
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	TokenFile          string
	SpreadsheetID      string
	SpreadsheetName    string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.timeout", DefaultAPITimeout)
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("display.currency", DefaultCurrency)
	v.SetDefault("ui.theme", "default")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", DefaultLogFile)
	v.SetDefault("sheets.spreadsheet_name", "Tally Report")
	v.SetDefault("sheets.token_file", DefaultTokenFile)
}

// Load reads the configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		APIURL:       strings.TrimRight(v.GetString("api.url"), "/"),
		APITimeout:   v.GetDuration("api.timeout"),
		DatabasePath: ExpandPath(v.GetString("database.path")),
		Currency:     v.GetString("display.currency"),
		Theme:        v.GetString("ui.theme"),
		LogLevel:     v.GetString("logging.level"),
		LogFormat:    v.GetString("logging.format"),
		LogFile:      ExpandPath(v.GetString("logging.file")),
		Sheets: SheetsConfig{
			ServiceAccountPath: ExpandPath(v.GetString("sheets.service_account_path")),
			ClientID:           v.GetString("sheets.client_id"),
			ClientSecret:       v.GetString("sheets.client_secret"),
			RefreshToken:       v.GetString("sheets.refresh_token"),
			TokenFile:          ExpandPath(v.GetString("sheets.token_file")),
			SpreadsheetID:      v.GetString("sheets.spreadsheet_id"),
			SpreadsheetName:    v.GetString("sheets.spreadsheet_name"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("%w: api.url is empty", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.url %q must be an http(s) URL", common.ErrInvalidConfig, c.APIURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database.path is empty", common.ErrMissingConfig)
	}
	return nil
}
