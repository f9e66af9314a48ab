// Package main is the mountsim command.
package main

import (
	"os"

	"go.viam.com/mountsim/cli"
	"go.viam.com/mountsim/logging"
)

func main() {
	logging.ReplaceGlobal(logging.NewWriterLogger("mountsim", os.Stderr, logging.ERROR))
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.Global().Error(err)
		os.Exit(1)
	}
}
