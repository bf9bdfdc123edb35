// internal/service/reconciler.go
package service

import (
    "time"

    "github.com/davquint/callcampaign-backend/internal/model"
)

// NextStatus derives the status a campaign should hold at the given
// moment. Boundary comparisons are inclusive: at exactly the start date
// the campaign is already active, at exactly the end date it is already
// finished. Both hops may apply in a single call, so a waiting campaign
// whose whole window elapsed comes out finished, not active.
func NextStatus(c model.Campaign, now time.Time) model.Status {
    status := c.Status
    if status == model.StatusWaiting && !now.Before(c.StartDate.Time) {
        status = model.StatusActive
    }
    if status == model.StatusActive && !now.Before(c.EndDate.Time) {
        status = model.StatusFinished
    }
    return status
}

// Reconcile applies NextStatus across a whole campaign list. The input
// slice is never mutated: the result shares unchanged entries and holds
// fresh copies of the moved ones, along with one StatusEvent per
// transition hop and a flag telling the caller whether anything moved
// at all. Running it twice with the same clock reading changes nothing
// the second time.
func Reconcile(campaigns []model.Campaign, now time.Time) ([]model.Campaign, []model.StatusEvent, bool) {
    out := make([]model.Campaign, len(campaigns))
    copy(out, campaigns)

    var events []model.StatusEvent
    changed := false

    for i := range out {
        next := NextStatus(out[i], now)
        if next == out[i].Status {
            continue
        }

        at := model.NewDateTime(now)
        if out[i].Status == model.StatusWaiting && next == model.StatusFinished {
            // The window fully elapsed in one pass: both hops happened
            // and each gets its own event.
            events = append(events,
                model.StatusEvent{CampaignID: out[i].ID, CampaignName: out[i].Name, From: model.StatusWaiting, To: model.StatusActive, At: at},
                model.StatusEvent{CampaignID: out[i].ID, CampaignName: out[i].Name, From: model.StatusActive, To: model.StatusFinished, At: at},
            )
        } else {
            events = append(events, model.StatusEvent{
                CampaignID:   out[i].ID,
                CampaignName: out[i].Name,
                From:         out[i].Status,
                To:           next,
                At:           at,
            })
        }

        out[i].Status = next
        changed = true
    }

    return out, events, changed
}
