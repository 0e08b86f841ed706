package config

import (
	"fmt"

	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/blang/semver"
)

type (
	//RunningCfg holds configuration options that are parsed at run time
	RunningCfg struct {
		Version  semver.Version
		Elephant elephant.Config
		Threads  int
		// Source is the file the config was read from, or "defaults"
		Source string
		// Warnings collects the problems which were corrected while loading
		Warnings []string
	}
)

// initRunningConfig uses the static config to initialize the running config
func initRunningConfig(static *StaticCfg, running *RunningCfg) error {
	var err error

	sortBy, ok := elephant.ParseSortKey(static.Elephant.SortBy)
	if !ok {
		running.Warnings = append(running.Warnings,
			fmt.Sprintf("invalid sort key %q, using %q", static.Elephant.SortBy, sortBy))
	}

	running.Elephant = elephant.Config{
		MinUptimeHours:   static.Elephant.MinUptimeHours,
		MinBytes:         static.Elephant.MinBytes,
		MinMbps:          static.Elephant.MinMbps,
		SortBy:           sortBy,
		IncludeFlagged:   static.Elephant.IncludeFlagged,
		IncludeOffloaded: static.Elephant.IncludeOffloaded,
	}

	running.Threads = static.Elephant.Threads
	if running.Threads < 0 {
		running.Warnings = append(running.Warnings,
			fmt.Sprintf("invalid thread count %d, using the default", static.Elephant.Threads))
		running.Threads = 0
	}

	if static.Log.LogLevel < 0 || static.Log.LogLevel > 3 {
		running.Warnings = append(running.Warnings,
			fmt.Sprintf("invalid log level %d, using 2", static.Log.LogLevel))
		static.Log.LogLevel = 2
	}

	running.Version, err = semver.ParseTolerant(static.Version)
	return err
}
