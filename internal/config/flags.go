package config

import (
	"flag"
	"strings"
)

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagPass        = flag.String("pass", "", "Active render pass (solid, cutout_mipped, cutout, translucent)")
	flagNoItemCache = flag.Bool("no-item-cache", false, "Disable item mesh caching")
	flagDefs        = flag.String("defs", "", "Comma-separated block definition files")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPass != "" {
		cfg.Render.Pass = *flagPass
	}
	if *flagNoItemCache {
		cfg.Render.ItemCache = false
	}
	if *flagDefs != "" {
		var defs []string
		for _, d := range strings.Split(*flagDefs, ",") {
			if d = strings.TrimSpace(d); d != "" {
				defs = append(defs, d)
			}
		}
		cfg.Assets.Definitions = defs
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
