package main

import (
	"context"
	"os"

	"github.com/mrops-br/storefront/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
