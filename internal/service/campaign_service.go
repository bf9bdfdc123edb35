// internal/service/campaign_service.go
package service

import (
    "fmt"
    "log"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"

    appErrors "github.com/davquint/callcampaign-backend/internal/errors"
    "github.com/davquint/callcampaign-backend/internal/model"
    "github.com/davquint/callcampaign-backend/internal/queue"
    "github.com/davquint/callcampaign-backend/internal/repository"
)

// CampaignService owns every campaign mutation. All operations load the
// full collection, bring statuses up to date against the clock, apply
// one change and write the full collection back. The mutex serializes
// HTTP handlers against the periodic reconciler so the two never
// interleave between a load and its save.
type CampaignService struct {
    Store repository.CampaignStore
    Queue queue.Queue

    // Now and NewID exist for tests; nil means real clock and UUIDs.
    Now   func() time.Time
    NewID func() string

    mu sync.Mutex
}

type PersonInput struct {
    Name     string
    LastName string
    Phone    string
}

type CreateCampaignInput struct {
    Name            string
    Status          string
    StartDate       string
    EndDate         string
    RecordingStatus bool
    People          []PersonInput
}

type UpdateCampaignInput struct {
    Name            string
    StartDate       string
    EndDate         string
    RecordingStatus bool
    People          []PersonInput
}

func (s *CampaignService) now() time.Time {
    if s.Now != nil {
        return s.Now()
    }
    return time.Now()
}

func (s *CampaignService) newID() string {
    if s.NewID != nil {
        return s.NewID()
    }
    return uuid.NewString()
}

// publish fans status events out to the queue. Delivery is best-effort:
// a transition already committed to the store is not rolled back because
// the broker hiccuped.
func (s *CampaignService) publish(events []model.StatusEvent) {
    if s.Queue == nil {
        return
    }
    for _, ev := range events {
        if err := s.Queue.Publish(queue.TopicStatusEvents, ev); err != nil {
            log.Println("⚠️ failed to publish status event:", err)
        }
    }
}

// loadReconciled pulls the collection and applies time transitions.
// Persisting on read is an optimization only: when the save fails the
// fresh statuses are still served and the next pass self-corrects.
func (s *CampaignService) loadReconciled(now time.Time) ([]model.Campaign, error) {
    campaigns, err := s.Store.LoadAll()
    if err != nil {
        return nil, err
    }
    campaigns, events, changed := Reconcile(campaigns, now)
    if changed {
        if err := s.Store.SaveAll(campaigns); err != nil {
            log.Println("⚠️ failed to persist reconciled statuses:", err)
            return campaigns, nil
        }
        s.publish(events)
    }
    return campaigns, nil
}

func findCampaign(campaigns []model.Campaign, id string) int {
    for i := range campaigns {
        if campaigns[i].ID == id {
            return i
        }
    }
    return -1
}

// ====================== Create ======================

// CreateCampaign validates the whole submission at once and reports
// every problem together. A campaign created directly as Activa gets
// its start date forced to now, whatever the caller sent.
func (s *CampaignService) CreateCampaign(in CreateCampaignInput) (*model.Campaign, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    now := s.now()
    nowMinute := model.NewDateTime(now)
    ve := &appErrors.ValidationError{}

    name := strings.TrimSpace(in.Name)
    if name == "" {
        ve.Add("name", appErrors.CodeRequired, "name is required")
    }

    initial := model.StatusWaiting
    switch strings.TrimSpace(in.Status) {
    case "", string(model.StatusWaiting):
        initial = model.StatusWaiting
    case string(model.StatusActive):
        initial = model.StatusActive
    default:
        ve.Add("status", appErrors.CodeInvalidStatus,
            fmt.Sprintf("status must be %q or %q", model.StatusWaiting, model.StatusActive))
    }

    start, startErr := model.ParseDateTime(in.StartDate)
    if startErr != nil {
        ve.Add("start_date", appErrors.CodeInvalidDate, "start date must use format dd/mm/yyyy hh:mm")
    }
    end, endErr := model.ParseDateTime(in.EndDate)
    if endErr != nil {
        ve.Add("end_date", appErrors.CodeInvalidDate, "end date must use format dd/mm/yyyy hh:mm")
    }

    if startErr == nil && endErr == nil {
        if initial == model.StatusActive {
            // The forced start is now, so the window just has to end later.
            if !end.Time.After(nowMinute.Time) {
                ve.Add("end_date", appErrors.CodeInvalidDates, "end date must be in the future")
            }
        } else {
            if start.Time.Before(nowMinute.Time) {
                ve.Add("start_date", appErrors.CodeInvalidDates, "start date must not be in the past")
            }
            if !start.Time.Before(end.Time) {
                ve.Add("end_date", appErrors.CodeInvalidDates, "end date must be after start date")
            }
        }
    }

    if len(in.People) == 0 {
        ve.Add("people", appErrors.CodeEmptyRoster, "campaign needs at least one person")
    }
    people := []model.Person{}
    for i, pin := range in.People {
        person, perr := ValidatePerson(pin.Name, pin.LastName, pin.Phone, people)
        if perr != nil {
            ve.Merge(fmt.Sprintf("people[%d]", i), perr)
            continue
        }
        person.ID = s.newID()
        people = append(people, person)
    }

    if ve.HasErrors() {
        return nil, ve
    }

    c := model.Campaign{
        ID:              s.newID(),
        Name:            name,
        Status:          initial,
        StartDate:       start,
        EndDate:         end,
        RecordingStatus: in.RecordingStatus,
        CreatedAt:       nowMinute,
        People:          people,
    }
    if initial == model.StatusActive {
        c.StartDate = nowMinute
    }

    campaigns, err := s.Store.LoadAll()
    if err != nil {
        return nil, err
    }
    campaigns, events, _ := Reconcile(campaigns, now)
    campaigns = append(campaigns, c)
    if err := s.Store.SaveAll(campaigns); err != nil {
        return nil, err
    }
    s.publish(events)

    log.Println("✅ Campaign created:", c.ID, "-", c.Name)
    return &c, nil
}

// ====================== Read ======================

// ListCampaigns returns a page of campaigns plus status counts over the
// whole collection. The status filter matches the persisted labels
// (En espera, Activa, Finalizada).
func (s *CampaignService) ListCampaigns(page, pageSize int, status string) ([]model.Campaign, map[string]int, map[string]int, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }

    campaigns, err := s.loadReconciled(s.now())
    if err != nil {
        return nil, nil, nil, err
    }

    statusCounts := map[string]int{
        string(model.StatusWaiting):  0,
        string(model.StatusActive):   0,
        string(model.StatusFinished): 0,
    }
    for _, c := range campaigns {
        statusCounts[string(c.Status)]++
    }

    filtered := campaigns
    if status != "" {
        filtered = []model.Campaign{}
        for _, c := range campaigns {
            if string(c.Status) == status {
                filtered = append(filtered, c)
            }
        }
    }

    total := len(filtered)
    totalPages := (total + pageSize - 1) / pageSize
    offset := (page - 1) * pageSize
    if offset > total {
        offset = total
    }
    endIdx := offset + pageSize
    if endIdx > total {
        endIdx = total
    }

    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return filtered[offset:endIdx], pagination, statusCounts, nil
}

// GetCampaign fetches one campaign by ID, statuses already up to date.
func (s *CampaignService) GetCampaign(id string) (*model.Campaign, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    campaigns, err := s.loadReconciled(s.now())
    if err != nil {
        return nil, err
    }
    idx := findCampaign(campaigns, id)
    if idx < 0 {
        return nil, appErrors.NewCampaignNotFound(id)
    }
    c := campaigns[idx]
    return &c, nil
}

// ====================== Update ======================

// UpdateCampaign replaces name, dates and the recording flag, and MERGES
// the roster: people in the input are appended to the existing roster
// after validation, never replacing it. No status allows removal here;
// that is what RemovePerson is for.
func (s *CampaignService) UpdateCampaign(id string, in UpdateCampaignInput) (*model.Campaign, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    now := s.now()
    campaigns, err := s.Store.LoadAll()
    if err != nil {
        return nil, err
    }
    campaigns, events, _ := Reconcile(campaigns, now)

    idx := findCampaign(campaigns, id)
    if idx < 0 {
        return nil, appErrors.NewCampaignNotFound(id)
    }
    c := campaigns[idx]

    ve := &appErrors.ValidationError{}

    name := strings.TrimSpace(in.Name)
    if name == "" {
        ve.Add("name", appErrors.CodeRequired, "name is required")
    }

    start, startErr := model.ParseDateTime(in.StartDate)
    if startErr != nil {
        ve.Add("start_date", appErrors.CodeInvalidDate, "start date must use format dd/mm/yyyy hh:mm")
    }
    end, endErr := model.ParseDateTime(in.EndDate)
    if endErr != nil {
        ve.Add("end_date", appErrors.CodeInvalidDate, "end date must use format dd/mm/yyyy hh:mm")
    }
    if startErr == nil && endErr == nil && !start.Time.Before(end.Time) {
        ve.Add("end_date", appErrors.CodeInvalidDates, "end date must be after start date")
    }

    merged := make([]model.Person, len(c.People))
    copy(merged, c.People)
    for i, pin := range in.People {
        person, perr := ValidatePerson(pin.Name, pin.LastName, pin.Phone, merged)
        if perr != nil {
            ve.Merge(fmt.Sprintf("people[%d]", i), perr)
            continue
        }
        person.ID = s.newID()
        merged = append(merged, person)
    }

    if ve.HasErrors() {
        return nil, ve
    }

    c.Name = name
    c.StartDate = start
    c.EndDate = end
    c.RecordingStatus = in.RecordingStatus
    c.People = merged
    campaigns[idx] = c

    if err := s.Store.SaveAll(campaigns); err != nil {
        return nil, err
    }
    s.publish(events)

    log.Println("✅ Campaign updated:", c.ID)
    return &c, nil
}

// ====================== Transitions ======================

// FinishCampaign closes an Activa campaign ahead of its end date.
func (s *CampaignService) FinishCampaign(id string) (*model.Campaign, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    now := s.now()
    campaigns, err := s.Store.LoadAll()
    if err != nil {
        return nil, err
    }
    campaigns, events, _ := Reconcile(campaigns, now)

    idx := findCampaign(campaigns, id)
    if idx < 0 {
        return nil, appErrors.NewCampaignNotFound(id)
    }
    c := campaigns[idx]
    if c.Status != model.StatusActive {
        return nil, appErrors.NewInvalidTransition(c.ID, "be finished", string(c.Status))
    }

    c.Status = model.StatusFinished
    campaigns[idx] = c

    if err := s.Store.SaveAll(campaigns); err != nil {
        return nil, err
    }
    events = append(events, model.StatusEvent{
        CampaignID:   c.ID,
        CampaignName: c.Name,
        From:         model.StatusActive,
        To:           model.StatusFinished,
        At:           model.NewDateTime(now),
    })
    s.publish(events)

    log.Println("✅ Campaign finished:", c.ID)
    return &c, nil
}

// DeleteCampaign abandons a campaign that never started. Anything past
// En espera has contact work behind it and stays on the books.
func (s *CampaignService) DeleteCampaign(id string) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    now := s.now()
    campaigns, err := s.Store.LoadAll()
    if err != nil {
        return err
    }
    campaigns, events, _ := Reconcile(campaigns, now)

    idx := findCampaign(campaigns, id)
    if idx < 0 {
        return appErrors.NewCampaignNotFound(id)
    }
    c := campaigns[idx]
    if c.Status != model.StatusWaiting {
        return appErrors.NewInvalidTransition(c.ID, "be deleted", string(c.Status))
    }

    campaigns = append(campaigns[:idx], campaigns[idx+1:]...)

    if err := s.Store.SaveAll(campaigns); err != nil {
        return err
    }
    s.publish(events)

    log.Println("✅ Campaign deleted:", id)
    return nil
}

// ====================== Roster ======================

// AddPerson validates and appends one person to a campaign's roster.
func (s *CampaignService) AddPerson(campaignID string, in PersonInput) (*model.Campaign, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    now := s.now()
    campaigns, err := s.Store.LoadAll()
    if err != nil {
        return nil, err
    }
    campaigns, events, _ := Reconcile(campaigns, now)

    idx := findCampaign(campaigns, campaignID)
    if idx < 0 {
        return nil, appErrors.NewCampaignNotFound(campaignID)
    }
    c := campaigns[idx]
    if c.IsFinished() {
        return nil, appErrors.NewInvalidTransition(c.ID, "enroll people", string(c.Status))
    }

    person, perr := ValidatePerson(in.Name, in.LastName, in.Phone, c.People)
    if perr != nil {
        return nil, perr
    }
    person.ID = s.newID()

    roster := make([]model.Person, len(c.People))
    copy(roster, c.People)
    c.People = append(roster, person)
    campaigns[idx] = c

    if err := s.Store.SaveAll(campaigns); err != nil {
        return nil, err
    }
    s.publish(events)

    log.Println("✅ Person added to campaign", c.ID, ":", person.Name, person.LastName)
    return &c, nil
}

// RemovePerson drops one person from the roster. A campaign in flight
// keeps at least one contact, and a finished one keeps its roster as-is.
func (s *CampaignService) RemovePerson(campaignID, personID string) (*model.Campaign, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    now := s.now()
    campaigns, err := s.Store.LoadAll()
    if err != nil {
        return nil, err
    }
    campaigns, events, _ := Reconcile(campaigns, now)

    idx := findCampaign(campaigns, campaignID)
    if idx < 0 {
        return nil, appErrors.NewCampaignNotFound(campaignID)
    }
    c := campaigns[idx]
    if c.IsFinished() {
        return nil, appErrors.NewInvalidTransition(c.ID, "remove people", string(c.Status))
    }
    if len(c.People) <= 1 {
        return nil, appErrors.NewLastPerson(c.ID)
    }

    pidx := c.FindPerson(personID)
    if pidx < 0 {
        return nil, appErrors.NewPersonNotFound(campaignID, personID)
    }

    roster := make([]model.Person, 0, len(c.People)-1)
    roster = append(roster, c.People[:pidx]...)
    roster = append(roster, c.People[pidx+1:]...)
    c.People = roster
    campaigns[idx] = c

    if err := s.Store.SaveAll(campaigns); err != nil {
        return nil, err
    }
    s.publish(events)

    log.Println("✅ Person removed from campaign", c.ID, ":", personID)
    return &c, nil
}

// ====================== Reconciliation ======================

// ReconcileNow runs one full reconciliation pass, persists it when
// something moved, and reports the transitions it applied. The periodic
// scheduler calls this; tests call it to advance the world.
func (s *CampaignService) ReconcileNow() ([]model.StatusEvent, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    campaigns, err := s.Store.LoadAll()
    if err != nil {
        return nil, err
    }
    campaigns, events, changed := Reconcile(campaigns, s.now())
    if !changed {
        return nil, nil
    }
    if err := s.Store.SaveAll(campaigns); err != nil {
        return nil, err
    }
    s.publish(events)
    return events, nil
}
