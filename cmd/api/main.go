package main

import (
	"fmt"
	"os"

	"github.com/thepsychonaut421/financio-recon/internal/cli"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/config"
)

func main() {
	flags := cli.ParseServeFlags()
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	if err := cli.RunServe(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
