// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"
    "strconv"

    appErrors "github.com/davquint/callcampaign-backend/internal/errors"
    "github.com/davquint/callcampaign-backend/internal/model"
    "github.com/davquint/callcampaign-backend/internal/service"

    "github.com/go-chi/chi/v5"
)


type CampaignController struct {
    CampaignService *service.CampaignService
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy onto status codes: bad
// input is 400 with field details, lifecycle rejections are 409,
// lookups that found nothing are 404, everything else is 500.
func writeError(w http.ResponseWriter, err error) {
    var ve *appErrors.ValidationError
    if errors.As(err, &ve) {
        writeJSON(w, http.StatusBadRequest, map[string]interface{}{
            "error":  "validation failed",
            "errors": ve.Fields,
        })
        return
    }

    var transition *appErrors.ErrInvalidTransition
    if errors.As(err, &transition) {
        writeJSON(w, http.StatusConflict, map[string]interface{}{"error": transition.Error()})
        return
    }
    var lastPerson *appErrors.ErrLastPerson
    if errors.As(err, &lastPerson) {
        writeJSON(w, http.StatusConflict, map[string]interface{}{"error": lastPerson.Error()})
        return
    }

    var campaignNF *appErrors.ErrCampaignNotFound
    var personNF *appErrors.ErrPersonNotFound
    if errors.As(err, &campaignNF) || errors.As(err, &personNF) {
        writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": err.Error()})
        return
    }

    log.Println("⚠️ internal error:", err)
    writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal server error"})
}

func personView(p model.Person) map[string]interface{} {
    return map[string]interface{}{
        "id":            p.ID,
        "name":          p.Name,
        "last_name":     p.LastName,
        "phone":         p.Phone,
        "phone_display": service.FormatPhone(p.Phone),
    }
}

func campaignView(c model.Campaign) map[string]interface{} {
    people := make([]map[string]interface{}, len(c.People))
    for i, p := range c.People {
        people[i] = personView(p)
    }
    return map[string]interface{}{
        "id":               c.ID,
        "name":             c.Name,
        "status":           c.Status,
        "start_date":       c.StartDate,
        "end_date":         c.EndDate,
        "recording_status": c.RecordingStatus,
        "created_at":       c.CreatedAt,
        "people":           people,
    }
}

type personBody struct {
    Name     string `json:"name"`
    LastName string `json:"last_name"`
    Phone    string `json:"phone"`
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Name            string       `json:"name"`
        Status          string       `json:"status"`
        StartDate       string       `json:"start_date"`
        EndDate         string       `json:"end_date"`
        RecordingStatus bool         `json:"recording_status"`
        People          []personBody `json:"people"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    in := service.CreateCampaignInput{
        Name:            body.Name,
        Status:          body.Status,
        StartDate:       body.StartDate,
        EndDate:         body.EndDate,
        RecordingStatus: body.RecordingStatus,
    }
    for _, p := range body.People {
        in.People = append(in.People, service.PersonInput{Name: p.Name, LastName: p.LastName, Phone: p.Phone})
    }

    campaign, err := c.CampaignService.CreateCampaign(in)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusCreated, campaignView(*campaign))
}


func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    // Parse query parameters
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    status := r.URL.Query().Get("status")

    campaigns, pagination, statusCounts, err := c.CampaignService.ListCampaigns(page, pageSize, status)
    if err != nil {
        writeError(w, err)
        return
    }

    data := make([]map[string]interface{}, len(campaigns))
    for i, campaign := range campaigns {
        data[i] = campaignView(campaign)
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{
        "data":          data,
        "pagination":    pagination, // already contains total_count, total_pages, page, page_size
        "status_counts": statusCounts,
    })
}

func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    var body struct {
        Name            string       `json:"name"`
        StartDate       string       `json:"start_date"`
        EndDate         string       `json:"end_date"`
        RecordingStatus bool         `json:"recording_status"`
        People          []personBody `json:"people"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    in := service.UpdateCampaignInput{
        Name:            body.Name,
        StartDate:       body.StartDate,
        EndDate:         body.EndDate,
        RecordingStatus: body.RecordingStatus,
    }
    for _, p := range body.People {
        in.People = append(in.People, service.PersonInput{Name: p.Name, LastName: p.LastName, Phone: p.Phone})
    }

    campaign, err := c.CampaignService.UpdateCampaign(id, in)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, campaignView(*campaign))
}

func (c *CampaignController) FinishCampaign(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    campaign, err := c.CampaignService.FinishCampaign(id)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, campaignView(*campaign))
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    if err := c.CampaignService.DeleteCampaign(id); err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": id})
}

func (c *CampaignController) AddPerson(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    var body personBody
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.AddPerson(id, service.PersonInput{
        Name:     body.Name,
        LastName: body.LastName,
        Phone:    body.Phone,
    })
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusCreated, campaignView(*campaign))
}

func (c *CampaignController) RemovePerson(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    personID := chi.URLParam(r, "personID")

    campaign, err := c.CampaignService.RemovePerson(id, personID)
    if err != nil {
        writeError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, campaignView(*campaign))
}
