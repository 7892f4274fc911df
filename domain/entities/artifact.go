package entities

import "time"

// ArtifactKind identifies which output directory and extension a generated file uses.
type ArtifactKind string

const (
	ArtifactAudio      ArtifactKind = "audio"
	ArtifactScreenshot ArtifactKind = "screenshot"
)

// Extension returns the fixed file extension for the kind.
func (k ArtifactKind) Extension() string {
	switch k {
	case ArtifactAudio:
		return ".mp3"
	case ArtifactScreenshot:
		return ".png"
	default:
		return ""
	}
}

// Artifact is a generated media file. It is written once and never updated;
// the service never deletes it either.
type Artifact struct {
	Kind      ArtifactKind `json:"kind"`
	Name      string       `json:"name"`
	Path      string       `json:"path"`
	CreatedAt time.Time    `json:"created_at"`
}
