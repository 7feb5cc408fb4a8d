package main

import (
	"os"

	"portfolio-gallery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
