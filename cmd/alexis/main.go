package main

import (
	"os"

	"github.com/bnema/alexis-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
