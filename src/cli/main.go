package main

import (
	"os"

	"github.com/humanmade/platform-core/src/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
