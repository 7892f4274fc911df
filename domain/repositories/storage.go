package repositories

import (
	"context"
	"io"

	"github.com/farolia/farol/domain/entities"
)

// ArtifactStore persists generated media files.
type ArtifactStore interface {
	// Create reserves a new uniquely named artifact and returns a writer for its content.
	Create(ctx context.Context, kind entities.ArtifactKind) (*entities.Artifact, io.WriteCloser, error)
	// Remove deletes an artifact whose content could not be completed.
	Remove(ctx context.Context, artifact *entities.Artifact) error
}

// ProfileRepository defines data access methods for candidate profiles
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.CandidateProfile) error
	GetByID(ctx context.Context, id string) (*entities.CandidateProfile, error)
	List(ctx context.Context, limit int) ([]*entities.CandidateProfile, error)
}
