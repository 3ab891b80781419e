package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/blocktree/infrastructure/config"
	"github.com/kaspanet/blocktree/version"
	"github.com/pkg/errors"
)

const (
	appName = "blocktreesim"

	defaultNumberOfBlocks     = 100
	defaultMiners             = 2
	defaultForkProbability    = 0.1
	defaultMaxLag             = 3
	defaultWallets            = 4
	defaultTransactionsPerBlk = 5
	defaultPendingLimit       = 1000
)

type configFlags struct {
	ShowVersion          bool    `short:"V" long:"version" description:"Display version information and exit"`
	NumberOfBlocks       uint64  `short:"n" long:"numblocks" description:"Number of blocks to add to the tree"`
	Miners               int     `long:"miners" description:"Number of concurrent block producers"`
	ForkProbability      float64 `long:"forkprobability" description:"Probability of building a block on an ancestor of the tip instead of the tip"`
	MaxLag               uint64  `long:"maxlag" description:"Maximum number of blocks below the tip a fork may start at"`
	Seed                 int64   `long:"seed" description:"Seed for the random choices of the simulation"`
	Wallets              int     `long:"wallets" description:"Number of wallets exchanging funds"`
	TransactionsPerBlock int     `long:"txsperblock" description:"Maximum number of transactions per block"`
	config.TreeFlags
	config.LogFlags
}

func defaultConfigFlags() *configFlags {
	cfg := &configFlags{
		NumberOfBlocks:       defaultNumberOfBlocks,
		Miners:               defaultMiners,
		ForkProbability:      defaultForkProbability,
		MaxLag:               defaultMaxLag,
		Seed:                 1,
		Wallets:              defaultWallets,
		TransactionsPerBlock: defaultTransactionsPerBlk,
	}
	cfg.MaximumPendingTransactions = defaultPendingLimit
	return cfg
}

func parseConfig() (*configFlags, error) {
	cfg := defaultConfigFlags()
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, err
	}

	err = cfg.validate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}

	err = cfg.ResolveTreeFlags(parser)
	if err != nil {
		return nil, err
	}

	err = cfg.ResolveLogFlags(parser, appName)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *configFlags) validate() error {
	if cfg.NumberOfBlocks == 0 {
		return errors.New("--numblocks must be positive")
	}
	if cfg.Miners < 1 {
		return errors.New("--miners must be positive")
	}
	if cfg.ForkProbability < 0 || cfg.ForkProbability > 1 {
		return errors.Errorf("--forkprobability must be between 0 and 1, got %f", cfg.ForkProbability)
	}
	if cfg.MaxLag == 0 {
		return errors.New("--maxlag must be positive")
	}
	if cfg.Wallets < 1 {
		return errors.New("--wallets must be positive")
	}
	if cfg.TransactionsPerBlock < 0 {
		return errors.New("--txsperblock must not be negative")
	}
	return nil
}
