package main

import (
	"os"

	"github.com/halvardsen/pseudogo/cmd/pseudogo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
