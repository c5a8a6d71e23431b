package music_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/northcove/go-narrate/pkg/music"
)

func newTestFetcher(t *testing.T, cacheEntries int) *music.Fetcher {
	t.Helper()
	f, err := music.NewFetcher(zap.NewNop(), 5*time.Second, cacheEntries)
	require.NoError(t, err)
	return f
}

func TestFetcher_HTTPSource(t *testing.T) {
	body := []byte("pretend this is an mp3")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	f := newTestFetcher(t, 0)

	got, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFetcher_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := newTestFetcher(t, 0)

	got, err := f.Fetch(context.Background(), srv.URL)

	require.ErrorIs(t, err, music.ErrFetch)
	assert.Nil(t, got)
}

func TestFetcher_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := newTestFetcher(t, 0)

	got, err := f.Fetch(context.Background(), url)

	require.ErrorIs(t, err, music.ErrFetch)
	assert.Nil(t, got)
}

func TestFetcher_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	f := newTestFetcher(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := f.Fetch(ctx, srv.URL)

	require.ErrorIs(t, err, music.ErrFetch)
	assert.Nil(t, got)
}

func TestFetcher_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bed.wav")
	body := []byte{'R', 'I', 'F', 'F', 1, 2, 3, 4}
	require.NoError(t, os.WriteFile(path, body, 0o644))

	f := newTestFetcher(t, 0)

	got, err := f.Fetch(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFetcher_MissingFile(t *testing.T) {
	f := newTestFetcher(t, 0)

	got, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.mp3"))

	require.ErrorIs(t, err, music.ErrFetch)
	assert.Nil(t, got)
}

func TestFetcher_CachesRepeatedSources(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("bed"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, 4)

	for i := 0; i < 3; i++ {
		got, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []byte("bed"), got)
	}

	assert.Equal(t, int32(1), hits.Load(), "repeat fetches should hit the cache")
}

func TestFetcher_CacheDisabled(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("bed"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, 0)

	for i := 0; i < 2; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(2), hits.Load())
}
