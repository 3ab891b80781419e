package transactionvalidator

import (
	"github.com/kaspanet/blocktree/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXVL")
