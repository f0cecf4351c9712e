package orion

import (
	"fmt"
)

// RunProgram creates a program, runs it until its window is closed
// and destroys it afterwards.
func RunProgram(opts Options) error {
	program, err := New(opts)
	if err != nil {
		return fmt.Errorf("create program: %w", err)
	}

	defer program.Destroy()

	return program.Run()
}
