// Package flagx lets several components read their own flags out of one
// command line without tripping over flags that belong to someone else
// (the cobra command tree in particular).
package flagx

import (
	"flag"
	"strings"
)

// normalize strips leading dashes so "-d", "--d", "-data-dir" and
// "--data-dir" compare by name only.
func normalize(s string) string {
	return strings.TrimLeft(s, "-")
}

// FilterArgs returns the subset of args made of allowed flags and their
// values. Flags are matched by name regardless of the number of leading
// dashes.
//
// Supported formats:
//
//	-d /tmp/data
//	--data-dir=/tmp/data
//
// Boolean-style flags (no following value) are kept as-is. The result is
// never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[normalize(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := allowed[normalize(name)]; !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags extracts the config file path given via -c, -config or
// --config. Returns "" when none is present.
func JsonConfigFlags(args []string) string {
	var config string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return config
}
