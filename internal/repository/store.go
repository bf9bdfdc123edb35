// internal/repository/store.go
package repository

import (
	"github.com/davquint/callcampaign-backend/internal/model"
)

// CampaignStore is the persistence boundary for the whole campaign
// collection. Reads return every campaign with its full roster; writes
// replace the collection wholesale. Callers own ordering and merging,
// the store owns nothing but faithful round-trips.
type CampaignStore interface {
	LoadAll() ([]model.Campaign, error)
	SaveAll(campaigns []model.Campaign) error
}
