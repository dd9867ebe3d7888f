package cache

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opnix.dev/opnix/internal/core/domain"
	"go.opnix.dev/opnix/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// sha256("hello world")
const helloSha256 = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

// md5("hello world")
const helloMd5 = "5eb63bbbe01eeed093cb22bb8f5acdc3"

func newStoreForTest(t *testing.T, offline bool) (*Store, *mocks.MockFetcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return NewStore(t.TempDir(), offline, fetcher, log), fetcher
}

func TestStore_VerifyOnline(t *testing.T) {
	t.Run("fetches and verifies a matching checksum", func(t *testing.T) {
		store, fetcher := newStoreForTest(t, false)
		fetcher.EXPECT().
			Fetch(gomock.Any(), "https://example.org/foo.tgz").
			Return(io.NopCloser(strings.NewReader("hello world")), nil)

		got, err := store.Verify(context.Background(), "https://example.org/foo.tgz",
			domain.Checksum{Algo: "sha256", Value: helloSha256})
		require.NoError(t, err)
		assert.Equal(t, helloSha256, got)
	})

	t.Run("serves the second lookup from the cache", func(t *testing.T) {
		store, fetcher := newStoreForTest(t, false)
		fetcher.EXPECT().
			Fetch(gomock.Any(), "https://example.org/foo.tgz").
			Return(io.NopCloser(strings.NewReader("hello world")), nil).
			Times(1)

		checksum := domain.Checksum{Algo: "md5", Value: helloMd5}
		first, err := store.Verify(context.Background(), "https://example.org/foo.tgz", checksum)
		require.NoError(t, err)
		second, err := store.Verify(context.Background(), "https://example.org/foo.tgz", checksum)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, helloSha256, second)
	})

	t.Run("records and keeps reporting a mismatch", func(t *testing.T) {
		store, fetcher := newStoreForTest(t, false)
		fetcher.EXPECT().
			Fetch(gomock.Any(), "https://example.org/foo.tgz").
			Return(io.NopCloser(strings.NewReader("hello world")), nil).
			Times(1)

		checksum := domain.Checksum{Algo: "sha256", Value: strings.Repeat("0", 64)}
		_, err := store.Verify(context.Background(), "https://example.org/foo.tgz", checksum)
		require.ErrorIs(t, err, domain.ErrChecksumMismatch)

		// Cached mismatch: no refetch, same outcome.
		_, err = store.Verify(context.Background(), "https://example.org/foo.tgz", checksum)
		require.ErrorIs(t, err, domain.ErrChecksumMismatch)
	})

	t.Run("rejects an unknown checksum algorithm", func(t *testing.T) {
		store, _ := newStoreForTest(t, false)
		_, err := store.Verify(context.Background(), "https://example.org/foo.tgz",
			domain.Checksum{Algo: "crc32", Value: "deadbeef"})
		require.ErrorIs(t, err, domain.ErrUnsupportedSource)
	})
}

func TestStore_VerifyOffline(t *testing.T) {
	t.Run("reports a miss as not cached", func(t *testing.T) {
		store, _ := newStoreForTest(t, true)
		_, err := store.Verify(context.Background(), "https://example.org/foo.tgz",
			domain.Checksum{Algo: "sha256", Value: helloSha256})
		require.ErrorIs(t, err, domain.ErrNotCached)
	})

	t.Run("serves entries cached while online", func(t *testing.T) {
		store, fetcher := newStoreForTest(t, false)
		fetcher.EXPECT().
			Fetch(gomock.Any(), "https://example.org/foo.tgz").
			Return(io.NopCloser(strings.NewReader("hello world")), nil)

		checksum := domain.Checksum{Algo: "sha256", Value: helloSha256}
		_, err := store.Verify(context.Background(), "https://example.org/foo.tgz", checksum)
		require.NoError(t, err)

		store.SetOffline(true)
		got, err := store.Verify(context.Background(), "https://example.org/foo.tgz", checksum)
		require.NoError(t, err)
		assert.Equal(t, helloSha256, got)
	})
}

func TestCacheKey(t *testing.T) {
	a := cacheKey("https://example.org/foo.tgz", domain.Checksum{Algo: "sha256", Value: "aa"})
	b := cacheKey("https://example.org/foo.tgz", domain.Checksum{Algo: "md5", Value: "aa"})
	c := cacheKey("https://example.org/bar.tgz", domain.Checksum{Algo: "sha256", Value: "aa"})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}
