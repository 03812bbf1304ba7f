package main

import (
	"os"

	"github.com/steelworks-io/uplift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
