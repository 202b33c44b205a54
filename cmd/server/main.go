package main

import (
	"os"

	"github.com/rsvp-planner/app/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
