package main

import (
	"os"

	"github.com/dataspine/mcda-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
