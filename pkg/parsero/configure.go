package parsero

import "github.com/parsero-dev/parsero/pkg/parsero/config"

// OptionsFromConfig maps a loaded configuration onto engine options.
//
// Recognized keys:
//
//	app_name, app_version  → WithInfo
//	max_iterations         → WithMaxIterations (0 disables the ceiling)
//	tracing, metrics       → WithTracing, WithMetrics
//
// Unrecognized keys are left for the caller; model and schema wiring always
// happens in code.
func OptionsFromConfig(cfg config.Config) []Option {
	var opts []Option

	name := cfg.String("app_name", "")
	if name != "" {
		opts = append(opts, WithInfo(Info{
			Name:    name,
			Version: cfg.String("app_version", ""),
		}))
	}
	if cfg.Has("max_iterations") {
		opts = append(opts, WithMaxIterations(cfg.Int("max_iterations", DefaultMaxIterations)))
	}
	if cfg.Bool("tracing", false) {
		opts = append(opts, WithTracing(true))
	}
	if cfg.Bool("metrics", false) {
		opts = append(opts, WithMetrics(true))
	}

	return opts
}
