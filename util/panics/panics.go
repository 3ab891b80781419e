package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/kaspanet/blocktree/infrastructure/logger"
)

// flushTimeout bounds how long a crashing process waits for its log backend.
const flushTimeout = 5 * time.Second

// HandlePanic must be deferred. It recovers a panic, logs it together with
// spawnStack (the stack of whoever started the goroutine, may be nil), flushes
// the log backend and terminates the process.
func HandlePanic(log *logger.Logger, goroutineName string, spawnStack []byte) {
	recovered := recover()
	if recovered == nil {
		return
	}

	logAndExit(log, fmt.Sprintf("panic in goroutine %q: %+v", goroutineName, recovered),
		debug.Stack(), spawnStack)
}

// GoroutineWrapperFunc returns a function that runs its argument on a new
// goroutine guarded by HandlePanic.
func GoroutineWrapperFunc(log *logger.Logger) func(name string, spawnedFunction func()) {
	return func(name string, spawnedFunction func()) {
		spawnStack := debug.Stack()
		go func() {
			defer HandlePanic(log, name, spawnStack)
			spawnedFunction()
		}()
	}
}

func logAndExit(log *logger.Logger, reason string, stacks ...[]byte) {
	flushed := make(chan struct{})
	go func() {
		defer close(flushed)
		log.Criticalf("Exiting: %s", reason)
		for _, stack := range stacks {
			if stack != nil {
				log.Criticalf("Stack trace: %s", stack)
			}
		}
		backend := log.Backend()
		if backend.IsRunning() {
			backend.Close()
		}
	}()

	select {
	case <-flushed:
	case <-time.After(flushTimeout):
		fmt.Fprintln(os.Stderr, "Timed out flushing the log before exit")
	}
	os.Exit(1)
}
