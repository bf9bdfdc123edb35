//cmd/seeder/main.go
package main

import (
    "encoding/json"
    "fmt"
    "io/ioutil"
    "log"

    "github.com/joho/godotenv"

    "github.com/davquint/callcampaign-backend/internal/db"
    "github.com/davquint/callcampaign-backend/internal/model"
    "github.com/davquint/callcampaign-backend/internal/repository"
)

func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    db.Init()
    defer db.DB.Close()

    schema, err := ioutil.ReadFile("seed/schema.sql")
    if err != nil {
        log.Fatalf("failed to read seed/schema.sql: %v", err)
    }
    if _, err := db.DB.Exec(string(schema)); err != nil {
        log.Fatalf("failed to execute seed/schema.sql: %v", err)
    }
    fmt.Println("Applied: seed/schema.sql")

    store := &repository.PostgresStore{DB: db.DB}

    existing, err := store.LoadAll()
    if err != nil {
        log.Fatalf("failed to check existing campaigns: %v", err)
    }
    if len(existing) > 0 {
        fmt.Printf("Database already has %d campaigns, skipping seed data\n", len(existing))
        return
    }

    content, err := ioutil.ReadFile("seed/campaigns.json")
    if err != nil {
        log.Fatalf("failed to read seed/campaigns.json: %v", err)
    }

    var campaigns []model.Campaign
    if err := json.Unmarshal(content, &campaigns); err != nil {
        log.Fatalf("failed to parse seed/campaigns.json: %v", err)
    }

    if err := store.SaveAll(campaigns); err != nil {
        log.Fatalf("failed to seed campaigns: %v", err)
    }
    fmt.Printf("Seeded: %d campaigns\n", len(campaigns))

    fmt.Println("Database seeding completed successfully!")
}
