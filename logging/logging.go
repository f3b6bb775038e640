// ABOUTME: zerolog construction for CLI and TUI processes
// ABOUTME: Level from config, file target when the TUI owns the terminal
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

// New builds a logger writing to w at the named level. Unknown levels
// fall back to info.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// NewFile builds a logger appending to the app log under the XDG state
// dir. The TUI uses this so log lines never fight the terminal renderer.
// The returned closer is a no-op when the file could not be opened; the
// logger is then disabled rather than failing the program.
func NewFile(level string) (zerolog.Logger, func()) {
	path := filepath.Join(xdg.StateHome, "vendordesk", "vendordesk.log")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), func() {}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
	if err != nil {
		return zerolog.Nop(), func() {}
	}
	return New(level, zerolog.SyncWriter(f)), func() { _ = f.Close() }
}
