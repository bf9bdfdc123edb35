// internal/repository/postgres_store.go
package repository

import (
    "database/sql"
    "log"

    "github.com/davquint/callcampaign-backend/internal/model"
)

// PostgresStore persists the campaign collection in Postgres. The
// collection is small by design, so reads pull everything and writes
// rewrite everything inside one transaction; row positions keep the
// collection and roster order stable across round-trips.
type PostgresStore struct {
    DB *sql.DB
}

// ====================== Load ======================

func (s *PostgresStore) LoadAll() ([]model.Campaign, error) {
    query := `
        SELECT id, name, status, start_date, end_date, recording_status, created_at
        FROM campaigns
        ORDER BY position
    `
    rows, err := s.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    campaigns := []model.Campaign{}
    index := map[string]int{}
    for rows.Next() {
        var c model.Campaign
        if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.StartDate, &c.EndDate, &c.RecordingStatus, &c.CreatedAt); err != nil {
            return nil, err
        }
        c.People = []model.Person{}
        index[c.ID] = len(campaigns)
        campaigns = append(campaigns, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }

    peopleQuery := `
        SELECT id, campaign_id, name, last_name, phone
        FROM people
        ORDER BY campaign_id, position
    `
    peopleRows, err := s.DB.Query(peopleQuery)
    if err != nil {
        return nil, err
    }
    defer peopleRows.Close()

    for peopleRows.Next() {
        var p model.Person
        var campaignID string
        if err := peopleRows.Scan(&p.ID, &campaignID, &p.Name, &p.LastName, &p.Phone); err != nil {
            return nil, err
        }
        i, ok := index[campaignID]
        if !ok {
            log.Println("⚠️ person row without campaign, skipping:", p.ID)
            continue
        }
        campaigns[i].People = append(campaigns[i].People, p)
    }
    if err := peopleRows.Err(); err != nil {
        return nil, err
    }

    return campaigns, nil
}

// ====================== Save ======================

func (s *PostgresStore) SaveAll(campaigns []model.Campaign) error {
    tx, err := s.DB.Begin()
    if err != nil {
        return err
    }
    defer tx.Rollback()

    if _, err := tx.Exec(`DELETE FROM people`); err != nil {
        return err
    }
    if _, err := tx.Exec(`DELETE FROM campaigns`); err != nil {
        return err
    }

    campaignInsert := `
        INSERT INTO campaigns (id, name, status, start_date, end_date, recording_status, created_at, position)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
    personInsert := `
        INSERT INTO people (id, campaign_id, name, last_name, phone, position)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
    for i, c := range campaigns {
        if _, err := tx.Exec(campaignInsert, c.ID, c.Name, string(c.Status), c.StartDate, c.EndDate, c.RecordingStatus, c.CreatedAt, i); err != nil {
            return err
        }
        for j, p := range c.People {
            if _, err := tx.Exec(personInsert, p.ID, c.ID, p.Name, p.LastName, p.Phone, j); err != nil {
                return err
            }
        }
    }

    return tx.Commit()
}

var _ CampaignStore = (*PostgresStore)(nil)
