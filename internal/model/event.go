// internal/model/event.go
package model

// StatusEvent records one applied status transition. Events travel the
// queue as JSON and feed the notification worker; a campaign whose whole
// window already elapsed produces two of these in a single pass.
type StatusEvent struct {
    CampaignID   string   `json:"campaign_id"`
    CampaignName string   `json:"campaign_name"`
    From         Status   `json:"from"`
    To           Status   `json:"to"`
    At           DateTime `json:"at"`
}
