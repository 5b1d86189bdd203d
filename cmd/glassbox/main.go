package main

import (
	"os"

	"github.com/mc-adrian-lei/adrianlm-glassbox/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
