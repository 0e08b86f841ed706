package resources

import (
	"os"
	"path"
	"time"

	"github.com/activecm/asa-elephant/config"
	"github.com/activecm/asa-elephant/util"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
)

// initLogger creates the logger for logging to stderr and, when enabled,
// to per level files
func initLogger(logConfig *config.LogStaticCfg) (*log.Logger, error) {
	var logs = &log.Logger{}

	logs.Formatter = new(log.TextFormatter)

	logs.Out = os.Stderr
	logs.Hooks = make(log.LevelHooks)
	logs.Level = logLevel(logConfig.LogLevel)

	if logConfig.LogToFile && logConfig.LogPath != "" {
		if err := addFileLogger(logs, logConfig.LogPath); err != nil {
			return logs, err
		}
	}
	return logs, nil
}

// logLevel maps the configured level onto a logrus level
func logLevel(level int) log.Level {
	switch level {
	case 3:
		return log.DebugLevel
	case 2:
		return log.InfoLevel
	case 1:
		return log.WarnLevel
	case 0:
		return log.ErrorLevel
	}
	return log.InfoLevel
}

func addFileLogger(logger *log.Logger, logPath string) error {
	time := time.Now().Format(util.TimeFormat)
	logPath = path.Join(logPath, time)
	_, err := os.Stat(logPath)
	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(logPath, 0755)
		if err != nil {
			return util.NewIOError("create log directory", logPath, err)
		}
	}

	logger.Hooks.Add(lfshook.NewHook(lfshook.PathMap{
		log.DebugLevel: path.Join(logPath, "debug.log"),
		log.InfoLevel:  path.Join(logPath, "info.log"),
		log.WarnLevel:  path.Join(logPath, "warn.log"),
		log.ErrorLevel: path.Join(logPath, "error.log"),
		log.FatalLevel: path.Join(logPath, "fatal.log"),
		log.PanicLevel: path.Join(logPath, "panic.log"),
	}, nil))
	return nil
}
