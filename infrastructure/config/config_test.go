package config

import (
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/blocktree/domain/blocktree"
)

type testFlags struct {
	TreeFlags
	LogFlags
}

func parseForTest(t *testing.T, args ...string) (*testFlags, *flags.Parser) {
	cfg := &testFlags{}
	parser := flags.NewParser(cfg, flags.HelpFlag)
	_, err := parser.ParseArgs(args)
	if err != nil {
		t.Fatalf("ParseArgs(%v): %s", args, err)
	}
	return cfg, parser
}

func TestResolveTreeFlagsDefaults(t *testing.T) {
	cfg, parser := parseForTest(t)
	err := cfg.ResolveTreeFlags(parser)
	if err != nil {
		t.Fatalf("TestResolveTreeFlagsDefaults: %s", err)
	}
	treeConfig := cfg.TreeConfig
	if treeConfig.CutOffAge != blocktree.DefaultCutOffAge || treeConfig.EnablePruning ||
		treeConfig.MaximumPendingTransactions != 0 || treeConfig.TransactionValidator == nil {
		t.Fatalf("TestResolveTreeFlagsDefaults: unexpected config %+v", treeConfig)
	}
}

func TestResolveTreeFlags(t *testing.T) {
	cfg, parser := parseForTest(t, "--cutoffage=4", "--prune", "--nosigcheck", "--maxpendingtxs=50")
	err := cfg.ResolveTreeFlags(parser)
	if err != nil {
		t.Fatalf("TestResolveTreeFlags: %s", err)
	}
	treeConfig := cfg.TreeConfig
	if treeConfig.CutOffAge != 4 || !treeConfig.EnablePruning || treeConfig.MaximumPendingTransactions != 50 {
		t.Fatalf("TestResolveTreeFlags: unexpected config %+v", treeConfig)
	}
}

func TestResolveTreeFlagsNegativePool(t *testing.T) {
	cfg, parser := parseForTest(t, "--maxpendingtxs=-1")
	err := cfg.ResolveTreeFlags(parser)
	if err == nil {
		t.Fatalf("TestResolveTreeFlagsNegativePool: expected an error")
	}
}
