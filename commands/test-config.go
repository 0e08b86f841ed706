package commands

import (
	"fmt"
	"io"

	"github.com/activecm/asa-elephant/config"
	"github.com/activecm/asa-elephant/resources"

	"github.com/urfave/cli"
	yaml "gopkg.in/yaml.v2"
)

func init() {
	command := cli.Command{
		Flags: []cli.Flag{
			configFlag,
		},
		Name:   "test-config",
		Usage:  "Check the configuration file for validity",
		Action: testConfiguration,
	}

	bootstrapCommands(command)
}

// testConfiguration prints out the result of parsing the config file
func testConfiguration(c *cli.Context) error {
	// First, print out the config as it was parsed
	conf, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Failed to config: %s", err.Error()), -1)
	}

	if err := printConfig(c.App.Writer, conf); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	// Then test initializing the logging system
	resources.InitResources(c.String("config"))

	return nil
}

func printConfig(w io.Writer, conf *config.Config) error {
	staticConfig, err := yaml.Marshal(conf.S)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "# loaded from %s\n", conf.R.Source)
	fmt.Fprintf(w, "\n%s\n", string(staticConfig))
	for _, warning := range conf.R.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}
