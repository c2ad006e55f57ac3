// Package log provides the logging backend of the command-line tools, based
// around the go-logging package. The library packages never log.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/op/go-logging.v1"
)

// Format is the record layout of every backend.
const Format = "%{time:15:04:05.000} %{level:.4s} %{module}: %{message}"

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// Backend is a log backend.
type Backend struct {
	logging.LeveledBackend

	w io.WriteCloser
}

// New initializes a logging backend writing to the file f, or to stderr if f
// is empty. If disable is true, every record is discarded.
func New(f string, level string, disable bool) (*Backend, error) {
	var w io.WriteCloser
	switch {
	case disable:
		w = nopCloser{io.Discard}
	case f == "":
		w = nopCloser{os.Stderr}
	default:
		const fileMode = 0600
		var err error
		if w, err = os.OpenFile(f, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode); err != nil {
			return nil, fmt.Errorf("log: failed to create log file: %w", err)
		}
	}
	b, err := newBackend(w, level)
	if err != nil {
		w.Close()
		return nil, err
	}
	return b, nil
}

// NewWriter initializes a logging backend writing to w.
func NewWriter(w io.Writer, level string) (*Backend, error) {
	return newBackend(nopCloser{w}, level)
}

func newBackend(w io.WriteCloser, level string) (*Backend, error) {
	lvl, err := LevelFromString(level)
	if err != nil {
		return nil, err
	}
	base := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(base, logging.MustStringFormatter(Format))
	b := &Backend{
		LeveledBackend: logging.AddModuleLevel(formatted),
		w:              w,
	}
	b.SetLevel(lvl, "")
	return b, nil
}

// GetLogger returns a per-module logger that writes to the backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	l := logging.MustGetLogger(module)
	l.SetBackend(b)
	return l
}

// Close closes the log file, if any.
func (b *Backend) Close() error {
	return b.w.Close()
}

// LevelFromString parses a level name: ERROR, WARNING, NOTICE, INFO or DEBUG,
// in any case.
func LevelFromString(l string) (logging.Level, error) {
	switch strings.ToUpper(l) {
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING":
		return logging.WARNING, nil
	case "NOTICE":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	default:
		return logging.CRITICAL, fmt.Errorf("log: invalid level: '%v'", l)
	}
}
