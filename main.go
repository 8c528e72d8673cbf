package main

import (
	"os"

	"github.com/AnyUserName/imgsplice/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
