package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRoster is the member list used until the config file names its
// own.
var DefaultRoster = []string{"ゆうり", "みゆ", "のぞみ", "えみり", "まな", "まほ", "まい", "しん"}

// defaultHolidayFeed is the public Japanese national holiday calendar.
const defaultHolidayFeed = "https://calendar.google.com/calendar/ical/ja.japanese%23holiday%40group.v.calendar.google.com/public/basic.ics"

// HolidayConfig configures the holiday feed collaborator.
type HolidayConfig struct {
	// ICSURL is the holiday calendar subscription endpoint.
	ICSURL string `yaml:"ics_url"`
	// CacheTTLMinutes is how long a fetched month stays cached.
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
	// RefreshCron warms the cache for the current month on a schedule.
	// Empty disables the warmer.
	RefreshCron string `yaml:"refresh"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the JSON API.
	Listen string `yaml:"listen"`
	// WorkbookPath is the xlsx file holding the schedule and attendance
	// sheets.
	WorkbookPath string `yaml:"workbook_path"`
	// AuditDBPath is the SQLite file for the operation log.
	AuditDBPath string `yaml:"audit_db_path"`
	// Roster is the ordered member name list.
	Roster []string `yaml:"roster"`
	// Holidays configures the holiday feed and its cache.
	Holidays HolidayConfig `yaml:"holidays"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       "127.0.0.1:8080",
		WorkbookPath: "club.xlsx",
		AuditDBPath:  "operation_log.db",
		Roster:       append([]string(nil), DefaultRoster...),
		Holidays: HolidayConfig{
			ICSURL:          defaultHolidayFeed,
			CacheTTLMinutes: 360,
			RefreshCron:     "0 */6 * * *",
		},
	}
}

// Normalize fills missing or zero values with defaults so that
// partially filled configs still behave.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.WorkbookPath == "" {
		c.WorkbookPath = "club.xlsx"
	}
	if c.AuditDBPath == "" {
		c.AuditDBPath = "operation_log.db"
	}
	if len(c.Roster) == 0 {
		c.Roster = append([]string(nil), DefaultRoster...)
	}
	if c.Holidays.ICSURL == "" {
		c.Holidays.ICSURL = defaultHolidayFeed
	}
	if c.Holidays.CacheTTLMinutes <= 0 {
		c.Holidays.CacheTTLMinutes = 360
	}
}

// Load loads configuration from the given YAML path. A missing file is
// first-run: a default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration atomically via a temp file + rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".clubroll-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
