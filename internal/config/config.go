package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// BackupConfig points at the S3-compatible bucket used by backup push/pull.
type BackupConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Prefix    string
}

// Config holds runtime settings.
//
// Fields:
//   - DataDir: directory holding the collection documents and flag files.
//   - Backend: "file" (one JSON file per collection) or "sqlite".
//   - SQLiteDSN: database path for the sqlite backend, relative to DataDir
//     unless absolute or ":memory:".
//   - WatchDebounce: quiet period before a changed document is reported.
type Config struct {
	DataDir       string
	Backend       string
	SQLiteDSN     string
	LogLevel      string
	LogFormat     string
	WatchDebounce time.Duration
	Backup        BackupConfig
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = defaultDataDir()
	c.Backend = BackendFile
	c.SQLiteDSN = "pocketkeeper.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.WatchDebounce = 250 * time.Millisecond
	c.Backup = BackupConfig{
		Endpoint: "http://127.0.0.1:9000/",
		Region:   "us-east-1",
		Bucket:   "pocketkeeper",
		Prefix:   "backups",
	}
}

// LoadConfig builds a Config from defaults, then the JSON file, then flags
// found in os.Args.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

// SQLitePath resolves SQLiteDSN against DataDir.
func (c *Config) SQLitePath() string {
	if c.SQLiteDSN == ":memory:" || filepath.IsAbs(c.SQLiteDSN) {
		return c.SQLiteDSN
	}
	return filepath.Join(c.DataDir, c.SQLiteDSN)
}

// defaultDataDir follows XDG: $XDG_DATA_HOME/pocketkeeper, falling back to
// ~/.local/share/pocketkeeper and finally ./pocketkeeper-data.
func defaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "pocketkeeper-data"
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "pocketkeeper")
}
