package main

import (
	"os"

	"github.com/bianoble/tokensync/cmd/tokensync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
