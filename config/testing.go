package config

const testConfig = `
LogConfig:
    LogLevel: 3
    LogPath: null
    LogToFile: false
Elephant:
    MinUptimeHours: 1
    MinBytes: 1000000
    MinMbps: 0
    SortBy: bytes
    IncludeFlagged: true
    IncludeOffloaded: true
    Threads: 2
Output:
    Limit: 20
    DetailLimit: 5
`

// LoadTestingConfig loads the hard coded testing config
func LoadTestingConfig() (*Config, error) {
	config := &Config{}

	// Deserialize the yaml file contents into the static config
	if err := parseStaticConfig([]byte(testConfig), &config.S); err != nil {
		return nil, err
	}

	config.S.Version = "v0.0.0+testing"
	config.S.ExactVersion = "v0.0.0+testing"

	// Use the static config to initialize the running config
	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}
	config.R.Source = "testing"

	return config, nil
}
