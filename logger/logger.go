package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide structured logger.
var Log *slog.Logger

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
}
