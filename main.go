package main

import (
	"fmt"
	"os"

	"heckel.io/rtmtail/cmd"
)

var (
	version = "dev"
)

func main() {
	app := cmd.New()
	app.Version = version
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
