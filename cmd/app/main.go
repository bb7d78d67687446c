package main

import (
	"os"

	"github.com/wichananm65/gumtree-backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
