package main

import (
	"context"
	"fmt"
	"os"

	"moxie/cli"
	"moxie/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(cli.Execute(context.Background(), cfg, os.Args[1:], os.Stdout, os.Stderr))
}
