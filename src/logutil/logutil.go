// Package logutil configures the application logger with basic size-based
// file rotation (10MB, max 3 archives).
package logutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kataras/golog"
)

const (
	logFileName  = "region_mirror.log"
	maxSizeBytes = 10 * 1024 * 1024 // 10 MB
	maxArchives  = 3
)

// Setup configures golog. When file logging is disabled, output is
// discarded to keep stdout clean for the hosting desktop session.
func Setup(enableFileLogging bool) {
	golog.SetTimeFormat("2006-01-02 15:04:05")
	if !enableFileLogging {
		golog.SetOutput(io.Discard)
		return
	}
	golog.SetLevel("debug")
	rotateIfNeeded()
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		golog.SetOutput(os.Stderr)
		return
	}
	golog.SetOutput(io.MultiWriter(os.Stderr, &rotatingWriter{f: f}))
}

type rotatingWriter struct{ f *os.File }

func (w *rotatingWriter) Write(p []byte) (int, error) {
	// naive rotation check per write
	if st, err := w.f.Stat(); err == nil && st.Size()+int64(len(p)) > maxSizeBytes {
		_ = w.f.Close()
		rotateIfNeeded()
		nf, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return 0, err
		}
		w.f = nf
	}
	return w.f.Write(p)
}

func rotateIfNeeded() {
	// If base exceeds max size, rotate: .1, .2, .3 (oldest discarded)
	if st, err := os.Stat(logFileName); err == nil && st.Size() > maxSizeBytes {
		_ = os.Remove(archiveName(maxArchives))
		for i := maxArchives - 1; i >= 1; i-- {
			_ = os.Rename(archiveName(i), archiveName(i+1))
		}
		_ = os.Rename(logFileName, archiveName(1))
	}
}

func archiveName(n int) string { return filepath.Join(".", fmt.Sprintf("%s.%d", logFileName, n)) }
