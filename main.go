package main

import (
	"os"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/cli"
)

func main() {
	if !cli.Run(os.Args) {
		os.Exit(1)
	}
}
