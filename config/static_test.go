package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const staticConfigParserTestConfig = `
LogConfig:
    LogLevel: 1
    LogPath: /var/lib/elephant/logs
    LogToFile: true
Elephant:
    MinUptimeHours: 12.5
    MinBytes: 1073741824
    MinMbps: 100
    SortBy: both
    IncludeFlagged: false
    IncludeOffloaded: true
    Threads: 8
Input:
    DefaultFile: /srv/dumps/show-conn-detail.txt
Output:
    Limit: 100
    DetailLimit: 10
    Delimiter: "|"
    ReportDir: reports
`

var testConfigFullExp = StaticCfg{
	Log: LogStaticCfg{
		LogLevel:  1,
		LogPath:   "/var/lib/elephant/logs",
		LogToFile: true,
	},
	Elephant: ElephantStaticCfg{
		MinUptimeHours:   12.5,
		MinBytes:         1073741824,
		MinMbps:          100,
		SortBy:           "both",
		IncludeFlagged:   false,
		IncludeOffloaded: true,
		Threads:          8,
	},
	Input: InputStaticCfg{
		DefaultFile: "/srv/dumps/show-conn-detail.txt",
	},
	Output: OutputStaticCfg{
		Limit:       100,
		DetailLimit: 10,
		Delimiter:   "|",
		ReportDir:   "reports",
	},
}

// TestParseStaticConfig ensures that a yaml config
// string is correctly converted into a StaticCfg struct.
func TestParseStaticConfig(t *testing.T) {
	config := &StaticCfg{}
	err := parseStaticConfig([]byte(staticConfigParserTestConfig), config)

	// We are not testing the version setting ensure they are equal
	testConfigFullExp.Version = config.Version
	testConfigFullExp.ExactVersion = config.ExactVersion

	assert.Nil(t, err)
	assert.Equal(t, testConfigFullExp, *config)
}

// TestFilePathCleaning ensures that paths specified
// in a config file are cleaned up correctly.
func TestFilePathCleaning(t *testing.T) {
	testConfig := `
LogConfig:
    LogPath: /var/lib/elephant/incorrect/./../logs/
Input:
    DefaultFile: ./dumps//conn.txt
`
	config := &StaticCfg{}
	err := parseStaticConfig([]byte(testConfig), config)

	assert.Nil(t, err)
	assert.Equal(t, "/var/lib/elephant/logs", config.Log.LogPath)
	assert.Equal(t, "dumps/conn.txt", config.Input.DefaultFile)
}

// TestStaticConfigDefaults ensures that missing sections keep their defaults
func TestStaticConfigDefaults(t *testing.T) {
	config := &StaticCfg{}
	err := parseStaticConfig([]byte("Output:\n    Limit: 3\n"), config)

	assert.Nil(t, err)
	assert.Equal(t, 3, config.Output.Limit)
	assert.Equal(t, 5, config.Output.DetailLimit)
	assert.Equal(t, 1.0, config.Elephant.MinUptimeHours)
	assert.Equal(t, "bytes", config.Elephant.SortBy)
	assert.True(t, config.Elephant.IncludeOffloaded)
}

func TestParseStaticConfigInvalidYAML(t *testing.T) {
	config := &StaticCfg{}
	err := parseStaticConfig([]byte("Elephant: [unterminated"), config)
	assert.NotNil(t, err)
}
