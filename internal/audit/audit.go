// Package audit writes the append-only record of every attempted operation
// in an execute run. Opening the log is a prerequisite for any destructive
// action: if the log cannot be created, the run must abort before touching a
// single file. Entries are written synchronously as operations complete so a
// crash mid-run leaves a log consistent with reality up to that point.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// Header describes one run, written as the opening block of the log
type Header struct {
	Time        time.Time
	RunID       string
	MasterDir   string
	DuplicateDir string
	Action      string
	Fallback    bool
	Interactive bool
}

// Entry records one attempted operation
type Entry struct {
	Time          time.Time
	Action        string // action actually taken, e.g. "symlink (fallback)"
	DuplicatePath string
	MasterPath    string
	Size          int64
	Hash          string
	Outcome       string // "ok", "skipped" or "failed"
	Detail        string // skip reason or failure message
}

// Summary is the closing block written at run end
type Summary struct {
	Succeeded  int
	Failed     int
	Skipped    int
	BytesFreed int64
}

// Log is the open audit log for one run. It owns its file handle
// exclusively until Close.
type Log struct {
	file    *os.File
	path    string
	entries int
}

// Open creates the audit log file, creating parent directories as needed.
// An error here means the caller must not mutate the filesystem at all.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	return &Log{file: file, path: path}, nil
}

// Path returns the location of the log file
func (l *Log) Path() string {
	return l.path
}

// Entries returns the number of operation entries written so far
func (l *Log) Entries() int {
	return l.entries
}

// WriteHeader writes the run metadata block
func (l *Log) WriteHeader(h Header) error {
	mode := "batch"
	if h.Interactive {
		mode = "interactive"
	}

	_, err := fmt.Fprintf(l.file,
		"relink audit log\nrun: %s\nstarted: %s\nmaster dir: %s\nduplicate dir: %s\naction: %s\ncross-device fallback: %t\nmode: %s\n\n",
		h.RunID,
		h.Time.Format(time.RFC3339),
		h.MasterDir,
		h.DuplicateDir,
		h.Action,
		h.Fallback,
		mode)
	return err
}

// Record writes one operation entry. Writes are unbuffered; the entry is
// handed to the kernel before Record returns.
func (l *Log) Record(e Entry) error {
	detail := e.Detail
	if detail == "" {
		detail = "-"
	}

	_, err := fmt.Fprintf(l.file, "%s | %s | %s | %s | %d | %s | %s | %s\n",
		e.Time.Format(time.RFC3339),
		e.Action,
		e.DuplicatePath,
		e.MasterPath,
		e.Size,
		e.Hash,
		e.Outcome,
		detail)
	if err != nil {
		return err
	}
	l.entries++
	return nil
}

// WriteFooter writes the run totals block
func (l *Log) WriteFooter(s Summary) error {
	_, err := fmt.Fprintf(l.file,
		"\nsucceeded: %d\nfailed: %d\nskipped: %d\nbytes freed: %d (%s)\nfinished: %s\n",
		s.Succeeded,
		s.Failed,
		s.Skipped,
		s.BytesFreed,
		humanize.IBytes(uint64(s.BytesFreed)),
		time.Now().Format(time.RFC3339))
	return err
}

// Close closes the underlying file
func (l *Log) Close() error {
	return l.file.Close()
}
