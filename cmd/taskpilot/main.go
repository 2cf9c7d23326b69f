package main

import (
	"context"
	"os"

	"taskpilot/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
