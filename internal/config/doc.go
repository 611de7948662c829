// Package config loads runtime configuration for pocketkeeper.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config / --config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   data directory holding the <collection>.json documents
//	-b string   storage backend: file | sqlite
//	-l string   log level: debug | info | warn | error
//
// # JSON schema
//
//	{
//	  "data_dir": "/home/me/.local/share/pocketkeeper",
//	  "backend": "file",
//	  "sqlite_dsn": "pocketkeeper.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "watch_debounce": "250ms",
//	  "backup": {
//	    "endpoint": "http://127.0.0.1:9000/",
//	    "region": "us-east-1",
//	    "bucket": "pocketkeeper",
//	    "access_key": "admin",
//	    "secret_key": "secretpassword",
//	    "prefix": "backups"
//	  }
//	}
//
// Durations accept strings like "250ms" or integer nanoseconds.
package config
