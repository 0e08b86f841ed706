package commands

import (
	"fmt"

	"github.com/activecm/asa-elephant/resources"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "version",
		Usage: "Show elephant version",
		Flags: []cli.Flag{
			configFlag,
		},
		Action: showVersion,
	}

	bootstrapCommands(command)
}

func showVersion(c *cli.Context) error {
	res := resources.InitResources(c.String("config"))
	fmt.Fprintln(c.App.Writer, res.Config.R.Version.String())
	return nil
}
