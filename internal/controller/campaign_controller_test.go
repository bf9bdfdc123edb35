package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/davquint/callcampaign-backend/internal/controller"
	"github.com/davquint/callcampaign-backend/internal/model"
	"github.com/davquint/callcampaign-backend/internal/repository"
	"github.com/davquint/callcampaign-backend/internal/service"
)

// newTestRouter wires the controller the same way cmd/server does
func newTestRouter() (*service.CampaignService, *chi.Mux) {
	svc := &service.CampaignService{Store: repository.NewMemoryStore()}

	ctrl := &controller.CampaignController{CampaignService: svc}

	r := chi.NewRouter()
	r.Post("/campaigns", ctrl.CreateCampaign)
	r.Get("/campaigns", ctrl.ListCampaigns)
	r.Put("/campaigns/{id}", ctrl.UpdateCampaign)
	r.Post("/campaigns/{id}/finish", ctrl.FinishCampaign)
	r.Delete("/campaigns/{id}", ctrl.DeleteCampaign)
	r.Post("/campaigns/{id}/people", ctrl.AddPerson)
	r.Delete("/campaigns/{id}/people/{personID}", ctrl.RemovePerson)
	return svc, r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var b []byte
	if body != nil {
		b, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createBody(now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"name":       "Q1 Outreach",
		"status":     "En espera",
		"start_date": model.NewDateTime(now.Add(time.Hour)).String(),
		"end_date":   model.NewDateTime(now.Add(2 * time.Hour)).String(),
		"people": []map[string]string{
			{"name": "Ana", "last_name": "Gomez", "phone": "555 123 4567"},
			{"name": "Luis", "last_name": "Perez", "phone": "555 999 8877"},
		},
	}
}

func TestCreateCampaignEndpoint(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, r := newTestRouter()
	svc.Now = func() time.Time { return now }

	w := doJSON(t, r, "POST", "/campaigns", createBody(now))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var res map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res["id"] == "" || res["id"] == nil {
		t.Error("expected an assigned id")
	}
	if res["status"] != "En espera" {
		t.Errorf("expected En espera, got %v", res["status"])
	}

	people, ok := res["people"].([]interface{})
	if !ok || len(people) != 2 {
		t.Fatalf("expected 2 people in response, got %v", res["people"])
	}
	first := people[0].(map[string]interface{})
	if first["phone"] != "555 123 4567" {
		t.Errorf("stored phone must stay as typed, got %v", first["phone"])
	}
	if first["phone_display"] != "(555) 123-4567" {
		t.Errorf("expected grouped display form, got %v", first["phone_display"])
	}
}

func TestCreateCampaignValidationPayload(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, r := newTestRouter()
	svc.Now = func() time.Time { return now }

	w := doJSON(t, r, "POST", "/campaigns", map[string]interface{}{
		"name":       "",
		"status":     "En espera",
		"start_date": "yesterday",
		"end_date":   model.NewDateTime(now.Add(2 * time.Hour)).String(),
		"people": []map[string]string{
			{"name": "Ana", "last_name": "Gomez", "phone": "12"},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var res struct {
		Error  string `json:"error"`
		Errors []struct {
			Field string `json:"field"`
			Code  string `json:"code"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Error != "validation failed" {
		t.Errorf("unexpected error message %q", res.Error)
	}

	want := map[string]string{
		"name":            "required",
		"start_date":      "invalid_date",
		"people[0].phone": "invalid_phone",
	}
	for field, code := range want {
		found := false
		for _, fe := range res.Errors {
			if fe.Field == field && fe.Code == code {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing %s error on %s in %v", code, field, res.Errors)
		}
	}
}

func TestLifecycleConflictsOverHTTP(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, r := newTestRouter()
	svc.Now = func() time.Time { return now }

	w := doJSON(t, r, "POST", "/campaigns", createBody(now))
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}
	var created map[string]interface{}
	json.NewDecoder(w.Body).Decode(&created)
	id := created["id"].(string)

	// Still waiting: finish is a conflict
	w = doJSON(t, r, "POST", "/campaigns/"+id+"/finish", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 finishing a waiting campaign, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "cannot") {
		t.Errorf("expected a conflict explanation, got %s", w.Body.String())
	}

	// Activate, then deletion is a conflict
	now = now.Add(61 * time.Minute)
	w = doJSON(t, r, "DELETE", "/campaigns/"+id, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting an active campaign, got %d", w.Code)
	}

	// Early finish succeeds
	w = doJSON(t, r, "POST", "/campaigns/"+id+"/finish", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 finishing an active campaign, got %d: %s", w.Code, w.Body.String())
	}
	var finished map[string]interface{}
	json.NewDecoder(w.Body).Decode(&finished)
	if finished["status"] != "Finalizada" {
		t.Errorf("expected Finalizada, got %v", finished["status"])
	}

	// Terminal: roster edits rejected
	w = doJSON(t, r, "POST", "/campaigns/"+id+"/people", map[string]string{
		"name": "Eva", "last_name": "Diaz", "phone": "5551112233",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 adding to finished campaign, got %d", w.Code)
	}
}

func TestRemovePersonEndpoint(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, r := newTestRouter()
	svc.Now = func() time.Time { return now }

	w := doJSON(t, r, "POST", "/campaigns", createBody(now))
	var created map[string]interface{}
	json.NewDecoder(w.Body).Decode(&created)
	id := created["id"].(string)
	people := created["people"].([]interface{})
	firstID := people[0].(map[string]interface{})["id"].(string)

	// Unknown person on a roster of two is a plain 404
	w = doJSON(t, r, "DELETE", "/campaigns/"+id+"/people/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doJSON(t, r, "DELETE", "/campaigns/"+id+"/people/"+firstID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var after map[string]interface{}
	json.NewDecoder(w.Body).Decode(&after)
	if remaining := after["people"].([]interface{}); len(remaining) != 1 {
		t.Fatalf("expected 1 person left, got %d", len(remaining))
	}

	// The survivor is protected
	secondID := people[1].(map[string]interface{})["id"].(string)
	w = doJSON(t, r, "DELETE", "/campaigns/"+id+"/people/"+secondID, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 removing the last person, got %d", w.Code)
	}
}

func TestAddPersonDuplicateIsValidationError(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, r := newTestRouter()
	svc.Now = func() time.Time { return now }

	w := doJSON(t, r, "POST", "/campaigns", createBody(now))
	var created map[string]interface{}
	json.NewDecoder(w.Body).Decode(&created)
	id := created["id"].(string)

	// Same digits as Ana, different formatting
	w = doJSON(t, r, "POST", "/campaigns/"+id+"/people", map[string]string{
		"name": "Eva", "last_name": "Diaz", "phone": "5551234567",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "duplicate_phone") {
		t.Errorf("expected duplicate_phone in body, got %s", w.Body.String())
	}
}

func TestCampaignNotFoundMapping(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, r := newTestRouter()
	svc.Now = func() time.Time { return now }

	w := doJSON(t, r, "POST", "/campaigns/missing/finish", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 finishing unknown campaign, got %d", w.Code)
	}

	w = doJSON(t, r, "PUT", "/campaigns/missing", map[string]interface{}{
		"name":       "x",
		"start_date": model.NewDateTime(now.Add(time.Hour)).String(),
		"end_date":   model.NewDateTime(now.Add(2 * time.Hour)).String(),
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 updating unknown campaign, got %d", w.Code)
	}
}

func TestListCampaignsEndpoint(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc, r := newTestRouter()
	svc.Now = func() time.Time { return now }

	body := createBody(now)
	if w := doJSON(t, r, "POST", "/campaigns", body); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}
	body["name"] = "Q2 Outreach"
	if w := doJSON(t, r, "POST", "/campaigns", body); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	w := doJSON(t, r, "GET", "/campaigns?page=1&page_size=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res struct {
		Data       []map[string]interface{} `json:"data"`
		Pagination map[string]int           `json:"pagination"`
		Counts     map[string]int           `json:"status_counts"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(res.Data) != 1 {
		t.Errorf("expected one campaign on the page, got %d", len(res.Data))
	}
	if res.Pagination["total_count"] != 2 || res.Pagination["total_pages"] != 2 {
		t.Errorf("unexpected pagination: %v", res.Pagination)
	}
	if res.Counts["En espera"] != 2 {
		t.Errorf("unexpected status counts: %v", res.Counts)
	}
}
