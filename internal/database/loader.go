package database

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// sqliteMagic is the 16-byte header every SQLite 3 file starts with.
var sqliteMagic = []byte("SQLite format 3\x00")

// DefaultMaxUploadBytes caps uploads when LoadOptions.MaxBytes is zero.
const DefaultMaxUploadBytes = 64 << 20 // 64 MiB

// LoadOptions controls how an uploaded database is persisted and opened.
type LoadOptions struct {
	// MaxBytes is the upload size limit. Zero means DefaultMaxUploadBytes;
	// negative means unlimited.
	MaxBytes int64

	// TempDir is where the uploaded file is persisted. Empty means the
	// system temp directory.
	TempDir string
}

func (o LoadOptions) maxBytes() int64 {
	if o.MaxBytes == 0 {
		return DefaultMaxUploadBytes
	}
	return o.MaxBytes
}

// Load persists an uploaded database to a temp file and opens it.
// The returned DB owns the temp file: Close removes it. On any error the
// partial temp file is removed and no connection is left open.
func Load(ctx context.Context, r io.Reader, name string, opts LoadOptions) (*DB, error) {
	tmp, err := os.CreateTemp(opts.TempDir, "dbglance-*.db")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(path)
	}

	max := opts.maxBytes()
	src := r
	if max > 0 {
		// Read one byte past the limit so we can tell "exactly at the
		// limit" apart from "over it".
		src = io.LimitReader(r, max+1)
	}

	written, err := io.Copy(tmp, src)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("persist upload: %w", err)
	}
	if max > 0 && written > max {
		cleanup()
		return nil, fmt.Errorf("%w: upload exceeds %d bytes", ErrFileTooLarge, max)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("persist upload: %w", err)
	}

	db, err := openFile(ctx, path, name, true)
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return db, nil
}

// Open opens an existing SQLite file in place, without copying it. Used
// by the CLI; Close does not remove the file.
func Open(ctx context.Context, path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return openFile(ctx, path, filepath.Base(path), false)
}

func openFile(ctx context.Context, path, name string, owned bool) (*DB, error) {
	if err := checkHeader(path); err != nil {
		return nil, err
	}

	sqldb, err := open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	return &DB{sqldb: sqldb, path: path, name: name, owned: owned}, nil
}

// checkHeader verifies the file starts with the SQLite magic bytes.
// Catching garbage here gives a clear error before the driver sees it.
func checkHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, len(sqliteMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("%w: file shorter than a SQLite header", ErrInvalidFile)
	}
	if !bytes.Equal(header, sqliteMagic) {
		return fmt.Errorf("%w: bad header", ErrInvalidFile)
	}
	return nil
}
