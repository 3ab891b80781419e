package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/blocktree/domain/blocktree"
	"github.com/kaspanet/blocktree/domain/consensus/processes/transactionvalidator"
	"github.com/kaspanet/blocktree/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	defaultLogDirname = "logs"
	defaultLogLevel   = "info"
)

// LogFlags holds the logging configuration shared by the command line tools
type LogFlags struct {
	LogDir     string `long:"logdir" description:"Directory to log output"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	NoLogFiles bool   `long:"nologfiles" description:"Log to standard output only"`
}

// ResolveLogFlags applies the log levels and, unless NoLogFiles is set,
// attaches <LogDir>/<appName>.log and <LogDir>/<appName>_err.log to the
// logging backend. Standard output always receives info and above.
func (logFlags *LogFlags) ResolveLogFlags(parser *flags.Parser, appName string) error {
	if logFlags.DebugLevel == "" {
		logFlags.DebugLevel = defaultLogLevel
	}
	err := logger.ParseAndSetLogLevels(logFlags.DebugLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return err
	}

	if logFlags.NoLogFiles {
		err = logger.BackendLog.AddLogWriter(os.Stdout, logger.LevelInfo)
		if err != nil {
			return errors.Wrap(err, "error adding stdout to the logger")
		}
		return logger.BackendLog.Run()
	}

	if logFlags.LogDir == "" {
		logFlags.LogDir = defaultLogDirname
	}
	logFile := filepath.Join(logFlags.LogDir, appName+".log")
	errLogFile := filepath.Join(logFlags.LogDir, appName+"_err.log")
	logger.InitLog(logFile, errLogFile)
	return nil
}

// TreeFlags holds the block tree configuration
type TreeFlags struct {
	CutOffAge                  uint64 `long:"cutoffage" description:"Number of blocks below the tip height under which new blocks are rejected"`
	EnablePruning              bool   `long:"prune" description:"Drop blocks that can no longer be extended"`
	SkipSignatureCheck         bool   `long:"nosigcheck" description:"Accept transactions without verifying their signatures"`
	MaximumPendingTransactions int    `long:"maxpendingtxs" description:"Maximum number of transactions kept in the pending pool (0 for no limit)"`

	TreeConfig *blocktree.Config
}

// ResolveTreeFlags validates the tree flags and builds TreeConfig from them
func (treeFlags *TreeFlags) ResolveTreeFlags(parser *flags.Parser) error {
	if treeFlags.MaximumPendingTransactions < 0 {
		err := errors.Errorf("--maxpendingtxs must not be negative, got %d", treeFlags.MaximumPendingTransactions)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return err
	}

	treeConfig := blocktree.DefaultConfig()
	if treeFlags.CutOffAge != 0 {
		treeConfig.CutOffAge = treeFlags.CutOffAge
	}
	treeConfig.EnablePruning = treeFlags.EnablePruning
	treeConfig.MaximumPendingTransactions = treeFlags.MaximumPendingTransactions
	if treeFlags.SkipSignatureCheck {
		treeConfig.TransactionValidator = transactionvalidator.NewWithoutSignatureCheck()
	}

	treeFlags.TreeConfig = treeConfig
	return nil
}
