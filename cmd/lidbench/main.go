package main

import (
	"os"

	"lidbench/cmd/lidbench/commands"
)

func main() {
	root := commands.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
