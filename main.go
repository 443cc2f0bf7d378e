package main

import (
	"os"

	"github.com/justinav/pamoka/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
