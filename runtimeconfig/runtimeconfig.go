// Package runtimeconfig loads process-wide knobs for the evolution
// core from an INI file, with environment-variable overrides.
package runtimeconfig

import (
	"os"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/volpe-framework/evocore/bfe"
)

// RuntimeConfig holds the knobs read from the top-level (default,
// section-less) keys of an INI file: the ThreadBFE worker pool size and
// the debug NaN-check toggle.
type RuntimeConfig struct {
	ThreadBFEWorkers int  `ini:"thread_bfe_workers"`
	StrictNaN        bool `ini:"strict_nan"`
}

// Default returns a RuntimeConfig with the core's built-in defaults:
// GOMAXPROCS workers, NaN checking off.
func Default() RuntimeConfig {
	return RuntimeConfig{
		ThreadBFEWorkers: bfe.WorkerCount(),
		StrictNaN:        false,
	}
}

// Load reads configPath (an INI file) into a RuntimeConfig seeded with
// Default, then applies EVOCORE_* environment overrides.
func Load(configPath string) (RuntimeConfig, error) {
	rc := Default()
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := ini.MapTo(&rc, configPath); err != nil {
				return RuntimeConfig{}, err
			}
		}
	}
	if v, ok := os.LookupEnv("EVOCORE_THREAD_BFE_WORKERS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			rc.ThreadBFEWorkers = n
		}
	}
	if v, ok := os.LookupEnv("EVOCORE_STRICT_NAN"); ok {
		rc.StrictNaN = v == "1" || v == "true"
	}
	return rc, nil
}

// Apply installs rc's knobs process-wide.
func (rc RuntimeConfig) Apply() {
	bfe.SetWorkerCount(rc.ThreadBFEWorkers)
	bfe.SetStrictNaN(rc.StrictNaN)
}
