package resources

import (
	"fmt"
	"os"

	"github.com/activecm/asa-elephant/config"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type (
	// Resources provides a data structure for passing system Resources
	Resources struct {
		Config *config.Config
		Log    *log.Logger
		RunID  uuid.UUID
	}
)

// InitResources grabs the configuration file and intitializes the configuration data
// returning a *Resources object which has all of the necessary configuration information
func InitResources(userConfig string) *Resources {
	conf, err := config.LoadConfig(userConfig)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Failed to config: %s\n", err.Error())
		os.Exit(-1)
	}

	// Fire up the logging system
	log, err := initLogger(&conf.S.Log)
	if err != nil {
		fmt.Printf("Failed to prepare logs: %s\n", err.Error())
		os.Exit(-1)
	}

	return newResources(conf, log)
}

// newResources bundles up the system resources and reports the
// corrections made while loading the config
func newResources(conf *config.Config, logger *log.Logger) *Resources {
	r := &Resources{
		Config: conf,
		Log:    logger,
		RunID:  uuid.New(),
	}

	for _, warning := range conf.R.Warnings {
		r.Logger().WithField("config", conf.R.Source).Warn(warning)
	}
	r.Logger().WithField("config", conf.R.Source).Debug("Configuration loaded")
	return r
}

// Logger returns a log entry tagged with the run id
func (r *Resources) Logger() *log.Entry {
	return r.Log.WithField("run_id", r.RunID.String())
}
