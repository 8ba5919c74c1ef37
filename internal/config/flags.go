package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file as well")
	flagFrames      = flag.Int("frames", -1, "Number of frames to simulate (0 = until input quits)")
	flagInteractive = flag.Bool("interactive", false, "Drive the character and camera from the keyboard")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Interactive reports whether keyboard input was requested.
func Interactive() bool {
	return *flagInteractive
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.File.Path = *flagLogFile
	}
	if *flagFrames >= 0 {
		cfg.Sim.Frames = *flagFrames
	}
}
