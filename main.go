// Package main is the entry point for the vidfeed application.
package main

import (
	"github.com/samber/lo"
	"github.com/vidfeed-cli/vidfeed/cmd"
	"github.com/vidfeed-cli/vidfeed/config"
	"github.com/vidfeed-cli/vidfeed/internal/cache"
	"github.com/vidfeed-cli/vidfeed/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background cleanup of expired catalog snapshots.
	go cache.CollectGarbage()

	cmd.Execute()
}
