// Package cache implements the persisted checksum cache backing the
// HashVerifier port.
package cache

import (
	"context"
	"crypto/md5"  //nolint:gosec // Declared opam checksums may be md5; comparison only.
	"crypto/sha1" //nolint:gosec // Declared opam checksums may be sha1; comparison only.
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opnix.dev/opnix/internal/core/domain"
	"go.opnix.dev/opnix/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm = 0o750
)

// Store implements ports.HashVerifier with one JSON file per
// (address, declared checksum) key under a cache directory.
//
// The directory is the only state shared across concurrent
// invocations: entries are written with a temp-file-then-rename
// discipline so a concurrent reader never observes a partial entry,
// and unreadable or partial entries read back as ordinary misses.
type Store struct {
	dir     string
	offline bool
	fetcher ports.Fetcher
	log     ports.Logger
}

// entry is the persisted value for one verified address.
type entry struct {
	Address   string    `json:"address"`
	Declared  string    `json:"declared"`
	Sha256    string    `json:"sha256,omitempty"`
	Mismatch  string    `json:"mismatch,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewStore creates a checksum cache rooted at dir.
func NewStore(dir string, offline bool, fetcher ports.Fetcher, log ports.Logger) *Store {
	return &Store{
		dir:     filepath.Clean(dir),
		offline: offline,
		fetcher: fetcher,
		log:     log,
	}
}

// SetDir changes the cache directory.
func (s *Store) SetDir(dir string) {
	s.dir = filepath.Clean(dir)
}

// SetOffline toggles offline mode: lookups only, no fetches.
func (s *Store) SetOffline(offline bool) {
	s.offline = offline
}

// Verify resolves the declared checksum for an address to a verified
// sha256 hash. Cache hits are served from disk without refetching,
// including recorded mismatches, which must keep failing rather than
// be silently retried into acceptance.
func (s *Store) Verify(ctx context.Context, address string, declared domain.Checksum) (string, error) {
	key := cacheKey(address, declared)

	if e, ok := s.read(key); ok {
		if e.Mismatch != "" {
			return "", zerr.With(domain.ErrChecksumMismatch, "detail", e.Mismatch)
		}
		return e.Sha256, nil
	}

	if s.offline {
		return "", zerr.With(domain.ErrNotCached, "address", address)
	}

	return s.fetchAndVerify(ctx, key, address, declared)
}

func (s *Store) fetchAndVerify(ctx context.Context, key, address string, declared domain.Checksum) (string, error) {
	declaredHasher, err := hasherFor(declared.Algo)
	if err != nil {
		return "", err
	}

	body, err := s.fetcher.Fetch(ctx, address)
	if err != nil {
		return "", zerr.Wrap(err, "failed to fetch source for verification")
	}
	defer func() { _ = body.Close() }()

	strongHasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(declaredHasher, strongHasher), body); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash fetched content"), "address", address)
	}

	computed := hex.EncodeToString(declaredHasher.Sum(nil))
	strong := hex.EncodeToString(strongHasher.Sum(nil))

	if !strings.EqualFold(computed, declared.Value) {
		detail := fmt.Sprintf("%s: declared %s, computed %s", declared.Algo, declared.Value, computed)
		s.write(key, entry{
			Address:   address,
			Declared:  declared.String(),
			Mismatch:  detail,
			Timestamp: time.Now().UTC(),
		})
		return "", zerr.With(domain.ErrChecksumMismatch, "detail", detail)
	}

	s.write(key, entry{
		Address:   address,
		Declared:  declared.String(),
		Sha256:    strong,
		Timestamp: time.Now().UTC(),
	})
	return strong, nil
}

// read loads an entry, treating any missing, partial or corrupt file
// as a miss.
func (s *Store) read(key string) (entry, bool) {
	var e entry
	data, err := os.ReadFile(s.entryPath(key)) //nolint:gosec // Path is derived from a hash under our cache dir.
	if err != nil {
		return e, false
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return e, false
	}
	if e.Sha256 == "" && e.Mismatch == "" {
		return e, false
	}
	return e, true
}

// write persists an entry atomically: temp file in the same directory,
// then rename. A failed cache write is logged, not fatal; the verified
// hash is already in hand.
func (s *Store) write(key string, e entry) {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		s.log.Warn(fmt.Sprintf("failed to create cache directory: %v", err))
		return
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		s.log.Warn(fmt.Sprintf("failed to marshal cache entry: %v", err))
		return
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp-*")
	if err != nil {
		s.log.Warn(fmt.Sprintf("failed to create cache temp file: %v", err))
		return
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		s.log.Warn(fmt.Sprintf("failed to write cache entry: %v", err))
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		s.log.Warn(fmt.Sprintf("failed to close cache temp file: %v", err))
		return
	}

	if err := os.Rename(tmpPath, s.entryPath(key)); err != nil {
		_ = os.Remove(tmpPath)
		s.log.Warn(fmt.Sprintf("failed to publish cache entry: %v", err))
	}
}

func (s *Store) entryPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// cacheKey derives a filename-safe digest of the (address, declared
// checksum) pair.
func cacheKey(address string, declared domain.Checksum) string {
	h := xxhash.New()
	_, _ = h.WriteString(address)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(declared.String())
	return fmt.Sprintf("%016x", h.Sum64())
}

func hasherFor(algo string) (hash.Hash, error) {
	switch algo {
	case "md5":
		return md5.New(), nil //nolint:gosec // Comparison against a declared md5, not integrity by itself.
	case "sha1":
		return sha1.New(), nil //nolint:gosec // Same as md5 above.
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, zerr.With(
			zerr.With(domain.ErrUnsupportedSource, "reason", "unsupported checksum algorithm"),
			"algo", algo)
	}
}

var _ ports.HashVerifier = (*Store)(nil)
