//go:build !linux && !windows

package glimpse

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentThread falls back to the goroutine id on platforms without a thread id
// syscall in x/sys. Window goroutines are locked to their OS thread, so both
// identify the same owner.
func currentThread() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// "goroutine 42 [running]:..."
	field := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if idx := bytes.IndexByte(field, ' '); idx >= 0 {
		field = field[:idx]
	}

	id, _ := strconv.ParseUint(string(field), 10, 64)
	return id
}
