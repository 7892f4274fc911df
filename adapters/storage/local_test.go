package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/farolia/farol/domain/entities"
)

func newStore(t *testing.T) (*LocalArtifactStore, string, string) {
	t.Helper()
	root := t.TempDir()
	audioDir := filepath.Join(root, "audio_gerado")
	shotDir := filepath.Join(root, "screenshots_gerados")
	store, err := NewLocalArtifactStore(audioDir, shotDir, zaptest.NewLogger(t))
	require.NoError(t, err)
	return store, audioDir, shotDir
}

func TestNewLocalArtifactStoreCreatesDirectories(t *testing.T) {
	_, audioDir, shotDir := newStore(t)

	for _, dir := range []string{audioDir, shotDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestCreateWritesIntoKindDirectory(t *testing.T) {
	store, audioDir, shotDir := newStore(t)
	ctx := context.Background()

	audio, w, err := store.Create(ctx, entities.ArtifactAudio)
	require.NoError(t, err)
	_, err = w.Write([]byte("ID3"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, audioDir, filepath.Dir(audio.Path))
	assert.True(t, strings.HasSuffix(audio.Name, ".mp3"))
	data, err := os.ReadFile(audio.Path)
	require.NoError(t, err)
	assert.Equal(t, "ID3", string(data))

	shot, w, err := store.Create(ctx, entities.ArtifactScreenshot)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, shotDir, filepath.Dir(shot.Path))
	assert.True(t, strings.HasSuffix(shot.Name, ".png"))
}

func TestCreateProducesDistinctNamesConcurrently(t *testing.T) {
	store, _, _ := newStore(t)

	const n = 50
	names := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, w, err := store.Create(context.Background(), entities.ArtifactScreenshot)
			if err != nil {
				t.Error(err)
				return
			}
			w.Close()
			names <- a.Name
		}()
	}
	wg.Wait()
	close(names)

	seen := map[string]bool{}
	for name := range names {
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
	assert.Len(t, seen, n)
}

func TestCreateUnknownKind(t *testing.T) {
	store, _, _ := newStore(t)
	_, _, err := store.Create(context.Background(), entities.ArtifactKind("video"))
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := context.Background()

	a, w, err := store.Create(ctx, entities.ArtifactAudio)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.NoError(t, store.Remove(ctx, a))
	_, err = os.Stat(a.Path)
	assert.True(t, os.IsNotExist(err))

	// Removing twice is not an error.
	assert.NoError(t, store.Remove(ctx, a))
}
