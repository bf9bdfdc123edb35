// internal/repository/memory_store.go
package repository

import (
	"sync"

	"github.com/davquint/callcampaign-backend/internal/model"
)

// MemoryStore keeps the campaign collection in process memory. Used by
// tests and for running the server without Postgres or Redis around.
type MemoryStore struct {
	mu        sync.Mutex
	campaigns []model.Campaign
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadAll() ([]model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCampaigns(s.campaigns), nil
}

func (s *MemoryStore) SaveAll(campaigns []model.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = copyCampaigns(campaigns)
	return nil
}

// copyCampaigns deep-copies rosters too, so callers can never reach the
// store's own slices through a stale reference.
func copyCampaigns(in []model.Campaign) []model.Campaign {
	out := make([]model.Campaign, len(in))
	copy(out, in)
	for i := range out {
		people := make([]model.Person, len(in[i].People))
		copy(people, in[i].People)
		out[i].People = people
	}
	return out
}

var _ CampaignStore = (*MemoryStore)(nil)
