package entities

import (
	"errors"
	"strings"
	"time"
)

// Work model preferences offered by the signup form.
const (
	WorkModelRemote = "Remoto"
	WorkModelHybrid = "Híbrido"
	WorkModelOnSite = "Presencial"
)

// CandidateProfile is filled in by the voice-guided signup view.
type CandidateProfile struct {
	ID                 string    `json:"id" bson:"_id"`
	Name               string    `json:"name" bson:"name"`
	DesiredRole        string    `json:"desired_role" bson:"desired_role"`
	WorkModel          string    `json:"work_model" bson:"work_model"`
	AccessibilityNeeds []string  `json:"accessibility_needs" bson:"accessibility_needs"`
	ExperienceSummary  string    `json:"experience_summary" bson:"experience_summary"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

var (
	ErrProfileNameRequired = errors.New("profile name is required")
	ErrProfileNotFound     = errors.New("profile not found")
)

// Validate checks the minimum a profile needs before it is stored.
func (p *CandidateProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrProfileNameRequired
	}
	return nil
}
