package helpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/loadout"
)

// MockSavedBuildRepository is a test double for SavedBuildRepository interface
type MockSavedBuildRepository struct {
	mu     sync.RWMutex
	builds map[string]*loadout.SavedBuild // shipID/name -> build
	err    error
}

// NewMockSavedBuildRepository creates a new mock saved build repository
func NewMockSavedBuildRepository() *MockSavedBuildRepository {
	return &MockSavedBuildRepository{
		builds: make(map[string]*loadout.SavedBuild),
	}
}

// SetError makes every subsequent call fail with err (nil restores normal behavior)
func (m *MockSavedBuildRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Count returns the number of stored builds
func (m *MockSavedBuildRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.builds)
}

func key(shipID, name string) string {
	return shipID + "/" + name
}

// Save upserts a build by ship and name
func (m *MockSavedBuildRepository) Save(ctx context.Context, build *loadout.SavedBuild) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	stored := *build
	now := time.Now().UTC()
	if existing, ok := m.builds[key(build.ShipID, build.Name)]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = uuid.New().String()
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}
	m.builds[key(build.ShipID, build.Name)] = &stored
	return nil
}

// FindByName retrieves a build by ship and name
func (m *MockSavedBuildRepository) FindByName(ctx context.Context, shipID, name string) (*loadout.SavedBuild, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	b, ok := m.builds[key(shipID, name)]
	if !ok {
		return nil, &loadout.ErrSavedBuildNotFound{ShipID: shipID, Name: name}
	}
	copied := *b
	return &copied, nil
}

// ListByShip lists the builds of a ship ordered by name
func (m *MockSavedBuildRepository) ListByShip(ctx context.Context, shipID string) ([]*loadout.SavedBuild, error) {
	all, err := m.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	builds := make([]*loadout.SavedBuild, 0, len(all))
	for _, b := range all {
		if b.ShipID == shipID {
			builds = append(builds, b)
		}
	}
	return builds, nil
}

// ListAll lists every build ordered by ship and name
func (m *MockSavedBuildRepository) ListAll(ctx context.Context) ([]*loadout.SavedBuild, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}

	builds := make([]*loadout.SavedBuild, 0, len(m.builds))
	for _, b := range m.builds {
		copied := *b
		builds = append(builds, &copied)
	}
	sort.Slice(builds, func(i, j int) bool {
		if builds[i].ShipID != builds[j].ShipID {
			return builds[i].ShipID < builds[j].ShipID
		}
		return builds[i].Name < builds[j].Name
	})
	return builds, nil
}

// Delete removes a build
func (m *MockSavedBuildRepository) Delete(ctx context.Context, shipID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	if _, ok := m.builds[key(shipID, name)]; !ok {
		return &loadout.ErrSavedBuildNotFound{ShipID: shipID, Name: name}
	}
	delete(m.builds, key(shipID, name))
	return nil
}
