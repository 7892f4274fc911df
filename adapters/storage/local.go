package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/farolia/farol/domain/entities"
	"github.com/farolia/farol/domain/repositories"
)

// LocalArtifactStore writes artifacts into flat per-kind directories. File
// names are random UUIDs so concurrent requests never coordinate.
type LocalArtifactStore struct {
	dirs   map[entities.ArtifactKind]string
	logger *zap.Logger
}

var _ repositories.ArtifactStore = (*LocalArtifactStore)(nil)

// NewLocalArtifactStore creates the output directories if they do not exist.
func NewLocalArtifactStore(audioDir, screenshotDir string, logger *zap.Logger) (*LocalArtifactStore, error) {
	dirs := map[entities.ArtifactKind]string{
		entities.ArtifactAudio:      audioDir,
		entities.ArtifactScreenshot: screenshotDir,
	}
	for kind, dir := range dirs {
		if dir == "" {
			return nil, fmt.Errorf("output directory for %s is empty", kind)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory %q: %w", kind, dir, err)
		}
	}

	logger.Info("Artifact directories ready",
		zap.String("audioDir", audioDir),
		zap.String("screenshotDir", screenshotDir))

	return &LocalArtifactStore{dirs: dirs, logger: logger}, nil
}

// Create implements repositories.ArtifactStore
func (s *LocalArtifactStore) Create(ctx context.Context, kind entities.ArtifactKind) (*entities.Artifact, io.WriteCloser, error) {
	dir, ok := s.dirs[kind]
	if !ok {
		return nil, nil, fmt.Errorf("unknown artifact kind %q", kind)
	}

	name := uuid.New().String() + kind.Extension()
	path := filepath.Join(dir, name)

	// O_EXCL turns the (practically impossible) name collision into an error
	// instead of a silent overwrite.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create artifact file: %w", err)
	}

	artifact := &entities.Artifact{
		Kind:      kind,
		Name:      name,
		Path:      path,
		CreatedAt: time.Now(),
	}

	s.logger.Debug("Artifact created",
		zap.String("kind", string(kind)),
		zap.String("path", path))

	return artifact, f, nil
}

// Remove implements repositories.ArtifactStore
func (s *LocalArtifactStore) Remove(ctx context.Context, artifact *entities.Artifact) error {
	if artifact == nil {
		return nil
	}
	if err := os.Remove(artifact.Path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to remove artifact",
			zap.String("path", artifact.Path),
			zap.Error(err))
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}
