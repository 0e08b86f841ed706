package main

import (
	"os"
	"runtime"

	"github.com/activecm/asa-elephant/commands"
	"github.com/activecm/asa-elephant/config"
	"github.com/urfave/cli"
)

// Entry point of elephant
func main() {
	app := cli.NewApp()
	app.Name = "elephant"
	app.Usage = "Find elephant flows in firewall connection tables."

	// Change the version string with updates so that a quick help command will
	// let the testers know what version of elephant they're on
	app.Version = config.Version

	// Define commands used with this application
	app.Commands = commands.Commands()

	runtime.GOMAXPROCS(runtime.NumCPU())
	app.Run(os.Args)
}
