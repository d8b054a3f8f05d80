// Package store persists records as newline-terminated lines in flat files.
package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/compozy/carpark/pkg/logger"
	"github.com/spf13/afero"
)

// Codec turns one record into one line and back.
type Codec[T any] interface {
	Encode(T) string
	Decode(string) (T, error)
}

// Policy decides what Load does with a line the codec rejects.
type Policy string

const (
	// PolicySkip logs the bad line and keeps loading.
	PolicySkip Policy = "skip"
	// PolicyAbort stops at the bad line and returns what was read before it.
	PolicyAbort Policy = "abort"
)

// ParsePolicy maps a config string to a Policy, defaulting to PolicySkip.
func ParsePolicy(s string) Policy {
	if Policy(strings.ToLower(s)) == PolicyAbort {
		return PolicyAbort
	}
	return PolicySkip
}

type Options struct {
	// AtomicWrite writes to "<path>.tmp" and renames it over the store.
	AtomicWrite bool
	Policy      Policy
}

const filePerm os.FileMode = 0o644

// Store is a line-oriented file holding records of one type.
type Store[T any] struct {
	fs    afero.Fs
	path  string
	codec Codec[T]
	opts  Options
}

func New[T any](fs afero.Fs, path string, codec Codec[T], opts Options) *Store[T] {
	if opts.Policy == "" {
		opts.Policy = PolicySkip
	}
	return &Store[T]{fs: fs, path: path, codec: codec, opts: opts}
}

func (s *Store[T]) Path() string {
	return s.path
}

// Ensure creates the store as an empty file when it does not exist yet.
func (s *Store[T]) Ensure() error {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	if exists {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}
	return nil
}

// Load reads every non-empty line. A missing file loads as empty.
// On error the records decoded so far are returned alongside it.
func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	log := logger.FromContext(ctx).With("store", s.path)
	f, err := s.fs.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("Store missing, loading empty")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	var (
		records []T
		skipped int
		lineNo  int
	)
	reader := bufio.NewReader(f)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return records, fmt.Errorf("failed to read %s: %w", s.path, readErr)
		}
		if line == "" && readErr != nil {
			break
		}
		lineNo++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if line != "" {
			record, err := s.codec.Decode(line)
			switch {
			case err == nil:
				records = append(records, record)
			case s.opts.Policy == PolicyAbort:
				return records, &RecordError{Path: s.path, Line: lineNo, Err: err}
			default:
				log.Warn("Skipping malformed record", "line", lineNo, "error", err)
				skipped++
			}
		}
		if readErr != nil {
			break
		}
	}
	log.Debug("Store loaded", "records", len(records), "skipped", skipped)
	return records, nil
}

// Save overwrites the store with one line per record, in order.
func (s *Store[T]) Save(ctx context.Context, records []T) error {
	var b strings.Builder
	for _, record := range records {
		b.WriteString(s.codec.Encode(record))
		b.WriteByte('\n')
	}
	data := []byte(b.String())
	var err error
	if s.opts.AtomicWrite {
		err = s.writeAtomic(data)
	} else {
		err = s.writeInPlace(data)
	}
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("Store saved", "store", s.path, "records", len(records))
	return nil
}

func (s *Store[T]) writeInPlace(data []byte) (returnErr error) {
	f, err := s.fs.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", s.path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && returnErr == nil {
			returnErr = fmt.Errorf("failed to close %s: %w", s.path, closeErr)
		}
	}()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *Store[T]) writeAtomic(data []byte) error {
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, filePerm); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
