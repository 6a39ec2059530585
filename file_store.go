package payscope

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore persists the ledger in a single YAML file.
//
// Save writes the snapshot to a temporary file next to the ledger file and
// renames it over the previous one, so a crash mid-write leaves either the
// old or the new snapshot on disk, never a truncated one.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore returns a store for the ledger file at path. Nothing is done on disk yet.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger.With(zap.String("ledger_file", path))}
}

// Path returns the ledger file path.
func (s *FileStore) Path() string { return s.path }

// Init creates the ledger file and its parent directories when they do not exist.
func (s *FileStore) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: cannot stat %q: %w", ErrIO, s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: cannot create directory for %q: %w", ErrIO, s.path, err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil // created concurrently, fine.
	}
	if err != nil {
		return fmt.Errorf("%w: cannot create %q: %w", ErrIO, s.path, err)
	}
	return f.Close()
}

// Load reads the ledger file.
//
// A missing file is created empty and loads as an empty ledger. Malformed
// entries are skipped and logged as warnings.
func (s *FileStore) Load() (map[AccountID]Balance, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("ledger file does not exist, starting with an empty ledger", zap.Error(ErrResourceMissing))
		if err := s.Init(); err != nil {
			// the next Save will try again, the session can proceed in memory.
			s.logger.Error("failed to create ledger file", zap.Error(err))
		}
		return make(map[AccountID]Balance), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %q: %w", ErrIO, s.path, err)
	}

	balances, warnings, err := DecodeBalances(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ledger file %q: %w", s.path, err)
	}
	for _, w := range warnings {
		s.logger.Warn("invalid ledger entry",
			zap.Int("line", w.Line),
			zap.String("key", w.Key),
			zap.String("reason", w.Reason))
	}
	s.logger.Debug("ledger loaded", zap.Int("accounts", len(balances)))
	return balances, nil
}

// Save rewrites the whole ledger file with balances.
func (s *FileStore) Save(balances map[AccountID]Balance) error {
	var buf bytes.Buffer
	if err := EncodeBalances(&buf, balances); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: cannot create directory for %q: %w", ErrIO, s.path, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: cannot create temporary file for %q: %w", ErrIO, s.path, err)
	}
	// removing a renamed file fails harmlessly.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: cannot write %q: %w", ErrIO, tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: cannot sync %q: %w", ErrIO, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: cannot close %q: %w", ErrIO, tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("%w: cannot chmod %q: %w", ErrIO, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: cannot replace %q: %w", ErrIO, s.path, err)
	}
	s.logger.Debug("ledger saved", zap.Int("accounts", len(balances)))
	return nil
}

// Compile-time check: ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
