package cmd

import (
	"os"
	"syscall"
)

// TerminationSignals are those signals which asyncstreams considers to be
// requesting termination. Both are emulated on Windows.
var TerminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}
