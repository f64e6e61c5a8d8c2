package main

import (
	"fmt"
	"os"

	"mergepick/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.Deps{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mergepick: %v\n", err)
		os.Exit(1)
	}
}
