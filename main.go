package main

import (
	"fmt"
	"os"

	"github.com/yeremiapane/kitsu-storefront/commands"
)

func main() {
	if err := commands.NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
