package main

import (
	"os"

	"github.com/cocoindex-io/examples/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
