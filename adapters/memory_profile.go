package adapters

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/farolia/farol/domain/entities"
	"github.com/farolia/farol/domain/repositories"
)

// MemoryProfileRepository is the in-memory ProfileRepository used when no
// MONGODB_URI is configured. Profiles are lost on restart.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*entities.CandidateProfile
}

var _ repositories.ProfileRepository = (*MemoryProfileRepository)(nil)

// NewMemoryProfileRepository creates a new in-memory profile repository
func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		profiles: make(map[string]*entities.CandidateProfile),
	}
}

// Create implements ProfileRepository interface
func (m *MemoryProfileRepository) Create(ctx context.Context, profile *entities.CandidateProfile) error {
	if profile == nil {
		return errors.New("profile cannot be nil")
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if _, exists := m.profiles[profile.ID]; exists {
		return errors.New("profile with this ID already exists")
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	m.profiles[profile.ID] = copyProfile(profile)
	return nil
}

// GetByID implements ProfileRepository interface
func (m *MemoryProfileRepository) GetByID(ctx context.Context, id string) (*entities.CandidateProfile, error) {
	if id == "" {
		return nil, errors.New("profile ID cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	profile, exists := m.profiles[id]
	if !exists {
		return nil, entities.ErrProfileNotFound
	}
	return copyProfile(profile), nil
}

// List implements ProfileRepository interface, newest first
func (m *MemoryProfileRepository) List(ctx context.Context, limit int) ([]*entities.CandidateProfile, error) {
	m.mu.RLock()
	result := make([]*entities.CandidateProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		result = append(result, copyProfile(p))
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// copyProfile returns a copy so callers cannot mutate stored state.
func copyProfile(p *entities.CandidateProfile) *entities.CandidateProfile {
	c := *p
	if p.AccessibilityNeeds != nil {
		c.AccessibilityNeeds = append([]string(nil), p.AccessibilityNeeds...)
	}
	return &c
}
