package mempool

import (
	"github.com/kaspanet/blocktree/infrastructure/logger"
)

var log = logger.RegisterSubSystem("TXMP")
