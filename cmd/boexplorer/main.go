// Command boexplorer searches company registers and beneficial ownership
// registers and aggregates the results as BODS statements.
package main

import (
	"fmt"
	"os"

	cachesqlite "github.com/openownership/boexplorer/internal/adapters/driven/cache/sqlite"
	configfile "github.com/openownership/boexplorer/internal/adapters/driven/config/file"
	"github.com/openownership/boexplorer/internal/adapters/driven/download"
	"github.com/openownership/boexplorer/internal/adapters/driving/cli"
	"github.com/openownership/boexplorer/internal/core/services"
	"github.com/openownership/boexplorer/internal/logger"
	"github.com/openownership/boexplorer/internal/registries"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	cache, err := cachesqlite.New("")
	if err != nil {
		return fmt.Errorf("opening response cache: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warn("closing response cache: %v", err)
		}
	}()

	downloader := download.New(cache)
	explorer := services.NewExplorer(downloader, registries.Default(config, nil))

	cli.Configure(explorer, config, version)
	return cli.Execute()
}
