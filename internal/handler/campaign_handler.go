// internal/handler/campaign_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/davquint/callcampaign-backend/internal/errors"
	"github.com/davquint/callcampaign-backend/internal/service"
)

// CampaignHandler holds the dependencies for campaign-related HTTP handlers
type CampaignHandler struct {
	Service *service.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler with the given service
func NewCampaignHandler(svc *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		Service: svc,
	}
}

// GetCampaignDetailHandler returns a single campaign with roster counts,
// statuses already reconciled against the clock.
func (h *CampaignHandler) GetCampaignDetailHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	log.Println("📥 Handler called for campaign ID:", id)

	campaign, err := h.Service.GetCampaign(id)
	if err != nil {
		var notFound *appErrors.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			http.Error(w, "campaign not found: "+id, http.StatusNotFound)
			return
		}
		log.Println("❌ Error fetching campaign:", err)
		http.Error(w, "failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"campaign":     campaign,
		"people_count": len(campaign.People),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
