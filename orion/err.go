package orion

import (
	"fmt"
	"log/slog"
)

// Handle logs and panics if err is not nil. The panic value is an error
// wrapping err, prefixed with the formatted description, so that a recover
// can still inspect it with errors.Is.
func Handle(err error, desc string, args ...any) {
	if err == nil {
		return
	}

	wrapped := fmt.Errorf("%s: %w", fmt.Sprintf(desc, args...), err)
	slog.Error("Unrecoverable error", slog.Any("err", wrapped))

	panic(wrapped)
}
