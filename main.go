package main

import (
	"os"

	"github.com/kulugbekwork/lema/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
