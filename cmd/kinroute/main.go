// Command kinroute routes rainfall through a synthetic catchment with the
// kinematic-wave solver and prints the outlet hydrograph.
//
// Usage:
//
//	kinroute run --config run.yaml --steps 48 --metrics-out kinroute.prom
//	kinroute waves --config run.yaml
//
// A .env file in the working directory is loaded before flags are parsed, so
// KINROUTE_* overrides can live there.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "kinroute:", err)
		os.Exit(1)
	}
}
