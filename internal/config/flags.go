package config

import (
	"flag"

	"github.com/dmitrijs2005/pocketkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d / --data-dir   data directory
//	-b / --backend    storage backend
//	-l / --log-level  log level
//
// Only these flags are considered; the rest of the command line belongs to
// the command tree.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-d", "-data-dir", "-b", "-backend", "-l", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (file|sqlite)")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend (file|sqlite)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
