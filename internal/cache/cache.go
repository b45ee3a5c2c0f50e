// Package cache persists computed values as JSON files so expensive fetches
// happen once per cache directory.
package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
)

// Cached returns the value stored at path, or calls produce and stores its result.
//
// A file that is missing or does not decode into T counts as a miss. A producer
// error is returned as InnerFailed and nothing is written. Writes truncate the
// file in place; concurrent writers to the same path are not supported.
func Cached[T any](path string, produce func() (T, error)) (T, error) {
	var value T

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &value); err == nil {
			slog.Debug(LogMsgCacheHit, "path", path)
			return value, nil
		}
		slog.Warn(LogMsgCacheUnreadable, "path", path)
	} else {
		slog.Debug(LogMsgCacheMiss, "path", path)
	}

	value, err := produce()
	if err != nil {
		var zero T
		return zero, &Error{Kind: InnerFailed, Path: path, Err: err}
	}

	if err := write(path, value); err != nil {
		var zero T
		return zero, err
	}

	slog.Debug(LogMsgCacheWritten, "path", path)
	return value, nil
}

func write[T any](path string, value T) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, FilePerm)
	if err != nil {
		return &Error{Kind: FileCreateFailed, Path: path, Err: err}
	}

	encErr := json.NewEncoder(f).Encode(value)
	closeErr := f.Close()
	if err := errors.Join(encErr, closeErr); err != nil {
		return &Error{Kind: SerializationFailed, Path: path, Err: err}
	}
	return nil
}

// Remove deletes the cache files at paths. Missing files are ignored.
func Remove(paths ...string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		slog.Debug(LogMsgCacheFileRemoved, "path", p)
	}
	return errors.Join(errs...)
}
