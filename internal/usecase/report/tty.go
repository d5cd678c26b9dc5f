package report

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsOutputTerminal checks if stdout is a TTY. Local invocations get a
// human-formatted run summary; CI pipelines (the normal environment for
// danger) get plain output suitable for build logs.
func IsOutputTerminal() bool {
	return IsTTY(os.Stdout.Fd())
}
