package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kaspanet/blocktree/version"
	"github.com/kaspanet/blocktree/util/panics"
)

func main() {
	defer panics.HandlePanic(log, "main", nil)

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}
	defer log.Backend().Close()

	// Show version at startup.
	log.Infof("Version %s", version.Version())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim, err := newSimulation(cfg)
	if err != nil {
		log.Errorf("Error initializing the simulation: %+v", err)
		return
	}

	spawn("reportLoop", func() {
		sim.reportLoop(ctx)
	})

	err = sim.run(ctx)
	if err != nil {
		log.Errorf("Error in the simulation: %+v", err)
		return
	}
	sim.logSummary()
}
