// Package logging configures the process-wide phuslu logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
	"golang.org/x/term"
)

// Setup sets the global logger level and output. Stderr always gets the
// console format; with a file path, the file also gets JSON entries.
// The returned closer releases the log file and is never nil.
func Setup(level, file string) (io.Closer, error) {
	logger := log.Logger{
		Level:      log.ParseLevel(level),
		Caller:     1,
		TimeFormat: "2006-01-02 15:04:05",
	}

	console := &log.ConsoleWriter{
		ColorOutput:    term.IsTerminal(int(os.Stderr.Fd())),
		EndWithMessage: true,
		Writer:         os.Stderr,
	}

	if file == "" {
		logger.Writer = console
		log.DefaultLogger = logger
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, err
	}
	logFile, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	// Running under air, only the file gets entries.
	if os.Getenv("AIR_RESTART_COUNT") != "" {
		logger.Writer = &log.IOWriter{Writer: logFile}
	} else {
		logger.Writer = &log.MultiEntryWriter{console, &log.IOWriter{Writer: logFile}}
	}

	log.DefaultLogger = logger
	return logFile, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

