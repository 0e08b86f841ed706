package config

import (
	"os"
	"os/user"
	"path/filepath"
	"reflect"

	"github.com/creasty/defaults"
)

//Version is filled by the Makefile with `git describe --abbrev=0 --tags`
var Version = "v0.0.0-undefined"

//ExactVersion is filled by the Makefile with `git describe --always --long --dirty --tags`
var ExactVersion = "undefined"

//userConfigPath is the config location under the user's home directory
const userConfigPath = ".elephant/config.yaml"

//globalConfigPath is the system wide config location
const globalConfigPath = "/etc/elephant/config.yaml"

type (
	//Config holds the configuration for the running system
	Config struct {
		R RunningCfg
		S StaticCfg
	}
)

// LoadConfig attempts to load the configuration in order of precedence.
// An explicit cfgPath must exist. Otherwise the user's config, then the
// global config, is used if present, falling back to the built in defaults.
func LoadConfig(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		return loadConfigFile(cfgPath)
	}

	for _, candidate := range defaultConfigPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return loadConfigFile(candidate)
		}
	}

	return loadDefaultConfig()
}

// defaultConfigPaths lists the implicit config locations, most specific first
func defaultConfigPaths() []string {
	var paths []string
	if usr, err := user.Current(); err == nil && usr.HomeDir != "" {
		paths = append(paths, filepath.Join(usr.HomeDir, userConfigPath))
	}
	return append(paths, globalConfigPath)
}

// loadConfigFile reads the static config at cfgPath and derives the
// running config from it
func loadConfigFile(cfgPath string) (*Config, error) {
	config := &Config{}

	if err := loadStaticConfig(cfgPath, &config.S); err != nil {
		return config, err
	}

	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return config, err
	}
	config.R.Source = cfgPath

	return config, nil
}

// loadDefaultConfig builds a config without reading any file
func loadDefaultConfig() (*Config, error) {
	config := &Config{}

	if err := defaults.Set(&config.S); err != nil {
		return config, err
	}
	expandConfig(reflect.ValueOf(&config.S).Elem())
	cleanPaths(&config.S)
	setVersions(&config.S)

	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return config, err
	}
	config.R.Source = "defaults"

	return config, nil
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}
