package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pocketkeeper/internal/flagx"
	"github.com/dmitrijs2005/pocketkeeper/internal/timex"
)

type jsonBackup struct {
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Prefix    string `json:"prefix"`
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// empty values mean "keep what the defaults said".
type JsonConfig struct {
	DataDir       string          `json:"data_dir"`
	Backend       string          `json:"backend"`
	SQLiteDSN     string          `json:"sqlite_dsn"`
	LogLevel      string          `json:"log_level"`
	LogFormat     string          `json:"log_format"`
	WatchDebounce *timex.Duration `json:"watch_debounce"`
	Backup        *jsonBackup     `json:"backup"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Panics on
// read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.DataDir, jc.DataDir)
	setIfNotEmpty(&cfg.Backend, jc.Backend)
	setIfNotEmpty(&cfg.SQLiteDSN, jc.SQLiteDSN)
	setIfNotEmpty(&cfg.LogLevel, jc.LogLevel)
	setIfNotEmpty(&cfg.LogFormat, jc.LogFormat)
	if jc.WatchDebounce != nil {
		cfg.WatchDebounce = jc.WatchDebounce.Duration
	}
	if b := jc.Backup; b != nil {
		setIfNotEmpty(&cfg.Backup.Endpoint, b.Endpoint)
		setIfNotEmpty(&cfg.Backup.Region, b.Region)
		setIfNotEmpty(&cfg.Backup.Bucket, b.Bucket)
		setIfNotEmpty(&cfg.Backup.AccessKey, b.AccessKey)
		setIfNotEmpty(&cfg.Backup.SecretKey, b.SecretKey)
		setIfNotEmpty(&cfg.Backup.Prefix, b.Prefix)
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
