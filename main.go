package main

import (
	"os"

	"inquiry-desk/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
