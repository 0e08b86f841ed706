package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"

	"github.com/creasty/defaults"
	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		Log          LogStaticCfg      `yaml:"LogConfig"`
		Elephant     ElephantStaticCfg `yaml:"Elephant"`
		Input        InputStaticCfg    `yaml:"Input"`
		Output       OutputStaticCfg   `yaml:"Output"`
		Version      string
		ExactVersion string
	}

	//LogStaticCfg contains the configuration for logging
	LogStaticCfg struct {
		LogLevel  int    `yaml:"LogLevel" default:"2"`
		LogPath   string `yaml:"LogPath" default:"$HOME/.elephant/logs"`
		LogToFile bool   `yaml:"LogToFile" default:"false"`
	}

	//ElephantStaticCfg holds the default elephant flow thresholds.
	//Command line flags take precedence over these values.
	ElephantStaticCfg struct {
		MinUptimeHours   float64 `yaml:"MinUptimeHours" default:"1"`
		MinBytes         int64   `yaml:"MinBytes" default:"1000000"`
		MinMbps          float64 `yaml:"MinMbps" default:"0"`
		SortBy           string  `yaml:"SortBy" default:"bytes"`
		IncludeFlagged   bool    `yaml:"IncludeFlagged" default:"true"`
		IncludeOffloaded bool    `yaml:"IncludeOffloaded" default:"true"`
		Threads          int     `yaml:"Threads" default:"0"`
	}

	//InputStaticCfg controls where connection dumps are read from
	InputStaticCfg struct {
		DefaultFile string `yaml:"DefaultFile"`
	}

	//OutputStaticCfg controls how results are printed and exported
	OutputStaticCfg struct {
		Limit       int    `yaml:"Limit" default:"20"`
		DetailLimit int    `yaml:"DetailLimit" default:"5"`
		Delimiter   string `yaml:"Delimiter" default:","`
		ReportDir   string `yaml:"ReportDir" default:"elephant-html-report"`
	}
)

// loadStaticConfig attempts to parse a config file
func loadStaticConfig(cfgPath string, config *StaticCfg) error {
	_, err := os.Stat(cfgPath)
	if os.IsNotExist(err) {
		return err
	}

	cfgFile, err := ioutil.ReadFile(cfgPath)
	if err != nil {
		return err
	}

	err = parseStaticConfig(cfgFile, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read config: %s\n", err.Error())
		return err
	}
	return nil
}

// parseStaticConfig fills config with the defaults and then the values
// found in cfgFile
func parseStaticConfig(cfgFile []byte, config *StaticCfg) error {
	err := defaults.Set(config)
	if err != nil {
		return err
	}

	err = yaml.Unmarshal(cfgFile, config)
	if err != nil {
		return err
	}

	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	cleanPaths(config)
	setVersions(config)
	return nil
}

// cleanPaths normalizes the file system paths in the config
func cleanPaths(config *StaticCfg) {
	if config.Log.LogPath != "" {
		config.Log.LogPath = filepath.Clean(config.Log.LogPath)
	}
	if config.Input.DefaultFile != "" {
		config.Input.DefaultFile = filepath.Clean(config.Input.DefaultFile)
	}
	if config.Output.ReportDir != "" {
		config.Output.ReportDir = filepath.Clean(config.Output.ReportDir)
	}
}

// setVersions grabs the version constants set by the build process
func setVersions(config *StaticCfg) {
	config.Version = Version
	config.ExactVersion = ExactVersion
}
