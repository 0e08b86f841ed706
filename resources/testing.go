package resources

import (
	"io/ioutil"
	"testing"

	"github.com/activecm/asa-elephant/config"
	"github.com/sirupsen/logrus/hooks/test"
)

//InitTestResources creates a default testing resource bundle. Log output is
//discarded and captured by the returned hook.
func InitTestResources(t *testing.T) (*Resources, *test.Hook) {
	conf, err := config.LoadTestingConfig()
	if err != nil {
		t.Fatal(err)
	}

	logger, err := initLogger(&conf.S.Log)
	if err != nil {
		t.Fatal(err)
	}
	logger.Out = ioutil.Discard
	hook := test.NewLocal(logger)

	return newResources(conf, logger), hook
}
