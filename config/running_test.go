package config

import (
	"testing"

	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRunningConfig(t *testing.T) {
	static := &StaticCfg{}
	require.NoError(t, parseStaticConfig([]byte(staticConfigParserTestConfig), static))
	static.Version = "v1.2.3"

	running := &RunningCfg{}
	require.NoError(t, initRunningConfig(static, running))

	assert.Empty(t, running.Warnings)
	assert.Equal(t, uint64(1), running.Version.Major)
	assert.Equal(t, 8, running.Threads)
	assert.Equal(t, elephant.Config{
		MinUptimeHours:   12.5,
		MinBytes:         1073741824,
		MinMbps:          100,
		SortBy:           elephant.SortBoth,
		IncludeFlagged:   false,
		IncludeOffloaded: true,
	}, running.Elephant)
}

func TestInitRunningConfigCorrections(t *testing.T) {
	static := &StaticCfg{
		Log:      LogStaticCfg{LogLevel: 9},
		Elephant: ElephantStaticCfg{SortBy: "duration", Threads: -4},
		Version:  "v0.0.1",
	}
	running := &RunningCfg{}
	require.NoError(t, initRunningConfig(static, running))

	assert.Len(t, running.Warnings, 3)
	assert.Equal(t, elephant.SortBytes, running.Elephant.SortBy)
	assert.Equal(t, 0, running.Threads)
	assert.Equal(t, 2, static.Log.LogLevel)
}

func TestInitRunningConfigBadVersion(t *testing.T) {
	static := &StaticCfg{Elephant: ElephantStaticCfg{SortBy: "bytes"}, Version: "not-a-version"}
	running := &RunningCfg{}
	assert.NotNil(t, initRunningConfig(static, running))
}
