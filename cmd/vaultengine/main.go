package main

import (
	"os"

	"github.com/ladzaretti/vaultengine/cli"
	"github.com/ladzaretti/vaultengine/genericclioptions"
)

func main() {
	iostreams := genericclioptions.NewDefaultIOStreams()

	cmd := cli.NewDefaultCommand(iostreams, os.Args[1:])
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
