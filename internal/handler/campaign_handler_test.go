package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/davquint/callcampaign-backend/internal/handler"
	"github.com/davquint/callcampaign-backend/internal/model"
	"github.com/davquint/callcampaign-backend/internal/repository"
	"github.com/davquint/callcampaign-backend/internal/service"
)

func newDetailRouter(store repository.CampaignStore, now time.Time) *chi.Mux {
	svc := &service.CampaignService{Store: store}
	svc.Now = func() time.Time { return now }

	h := handler.NewCampaignHandler(svc)

	r := chi.NewRouter()
	r.Get("/campaigns/{id}", h.GetCampaignDetailHandler)
	return r
}

func TestGetCampaignDetail(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	store := repository.NewMemoryStore()
	store.SaveAll([]model.Campaign{
		{
			ID:        "c1",
			Name:      "Encuesta Q1",
			Status:    model.StatusWaiting,
			StartDate: model.NewDateTime(now.Add(time.Hour)),
			EndDate:   model.NewDateTime(now.Add(2 * time.Hour)),
			CreatedAt: model.NewDateTime(now),
			People: []model.Person{
				{ID: "p1", Name: "Ana", LastName: "Gomez", Phone: "5551234567"},
				{ID: "p2", Name: "Luis", LastName: "Perez", Phone: "5559998877"},
			},
		},
	})

	r := newDetailRouter(store, now)

	req := httptest.NewRequest("GET", "/campaigns/c1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res struct {
		Campaign    model.Campaign `json:"campaign"`
		PeopleCount int            `json:"people_count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Campaign.ID != "c1" {
		t.Errorf("expected campaign c1, got %s", res.Campaign.ID)
	}
	if res.PeopleCount != 2 {
		t.Errorf("expected people_count 2, got %d", res.PeopleCount)
	}
}

func TestGetCampaignDetailReconcilesStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	store := repository.NewMemoryStore()
	store.SaveAll([]model.Campaign{
		{
			ID:        "c1",
			Name:      "Encuesta Q1",
			Status:    model.StatusWaiting,
			StartDate: model.NewDateTime(now.Add(-time.Hour)),
			EndDate:   model.NewDateTime(now.Add(time.Hour)),
			CreatedAt: model.NewDateTime(now.Add(-2 * time.Hour)),
			People: []model.Person{
				{ID: "p1", Name: "Ana", LastName: "Gomez", Phone: "5551234567"},
			},
		},
	})

	r := newDetailRouter(store, now)

	req := httptest.NewRequest("GET", "/campaigns/c1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res struct {
		Campaign model.Campaign `json:"campaign"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Campaign.Status != model.StatusActive {
		t.Errorf("expected reconciled status Activa, got %s", res.Campaign.Status)
	}
}

func TestGetCampaignDetailNotFound(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	r := newDetailRouter(repository.NewMemoryStore(), now)

	req := httptest.NewRequest("GET", "/campaigns/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "campaign not found") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
