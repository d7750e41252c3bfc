//go:build windows

package exit

import "os"

// FromProcessState converts a finished process's state into an Exit. All
// Windows processes exit with a code, so the signal case never applies.
func FromProcessState(state *os.ProcessState) Exit {
	return FromCode(uint32(state.ExitCode()))
}
