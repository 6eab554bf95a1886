// Package storage keeps the task list in a plain text save file.
//
// The file is rewritten atomically after each change and guarded by an
// exclusive lock for as long as it is open, so two sessions never share it.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"

	"github.com/calvinalkan/bobbot/internal/task"
)

const (
	dirPerms        = 0o750
	filePerms       = 0o600
	maxLockAttempts = 5
)

// ErrLocked means another session has the save file open.
var ErrLocked = errors.New("save file is in use by another session")

// File is an open, locked save file.
type File struct {
	path   string
	lock   *os.File
	logger *log.Logger
}

// Open locks the save file at path, creating its directory if needed.
// The file itself need not exist. A nil logger discards diagnostics.
func Open(path string, logger *log.Logger) (*File, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	err := os.MkdirAll(filepath.Dir(path), dirPerms)
	if err != nil {
		return nil, fmt.Errorf("creating save dir: %w", err)
	}

	lock, err := acquireLock(path + ".lock")
	if err != nil {
		return nil, err
	}

	logger.Debug("save file locked", "path", path)

	return &File{path: path, lock: lock, logger: logger}, nil
}

// Path returns the save file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the task list. A missing file yields an empty list.
func (f *File) Load() (*task.List, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Debug("no save file yet", "path", f.path)

			return task.NewList(), nil
		}

		return nil, fmt.Errorf("reading save file: %w", err)
	}

	list, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}

	f.logger.Debug("loaded tasks", "path", f.path, "count", list.Len())

	return list, nil
}

// Save replaces the save file with the current list.
func (f *File) Save(list *task.List) error {
	err := atomic.WriteFile(f.path, bytes.NewReader(Encode(list)))
	if err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}

	// atomic.WriteFile keeps the temp file's mode on new files.
	err = os.Chmod(f.path, filePerms)
	if err != nil {
		return fmt.Errorf("setting save file permissions: %w", err)
	}

	f.logger.Debug("saved tasks", "path", f.path, "count", list.Len())

	return nil
}

// Close releases the lock. Safe to call more than once.
func (f *File) Close() error {
	if f.lock == nil {
		return nil
	}

	err := releaseLock(f.lock)
	f.lock = nil

	return err
}

// acquireLock takes a non-blocking exclusive flock on path.
// The lock file is removed on release, so after locking we check that the
// path still names the inode we hold and retry if it was replaced.
func acquireLock(path string) (*os.File, error) {
	for range maxLockAttempts {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, filePerms)
		if err != nil {
			return nil, fmt.Errorf("opening lock file: %w", err)
		}

		fd := int(file.Fd())

		err = unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB)
		if err != nil {
			_ = file.Close()

			if errors.Is(err, unix.EWOULDBLOCK) {
				return nil, fmt.Errorf("%w: %s", ErrLocked, path)
			}

			return nil, fmt.Errorf("flock: %w", err)
		}

		var held, current unix.Stat_t

		err = unix.Fstat(fd, &held)
		if err != nil {
			_ = file.Close()

			return nil, fmt.Errorf("fstat lock file: %w", err)
		}

		if unix.Stat(path, &current) == nil && current.Ino == held.Ino {
			return file, nil
		}

		_ = unix.Flock(fd, unix.LOCK_UN)
		_ = file.Close()
	}

	return nil, fmt.Errorf("%w: %s", ErrLocked, path)
}

// releaseLock removes the lock file while still holding it, then unlocks.
func releaseLock(file *os.File) error {
	_ = os.Remove(file.Name())
	_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)

	return file.Close()
}
