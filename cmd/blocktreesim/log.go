package main

import (
	"github.com/kaspanet/blocktree/infrastructure/logger"
	"github.com/kaspanet/blocktree/util/panics"
)

var (
	log   = logger.RegisterSubSystem("BSIM")
	spawn = panics.GoroutineWrapperFunc(log)
)
