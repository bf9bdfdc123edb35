// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/go-chi/chi/v5"

	"github.com/davquint/callcampaign-backend/internal/controller"
	"github.com/davquint/callcampaign-backend/internal/db"
	"github.com/davquint/callcampaign-backend/internal/repository"
	"github.com/davquint/callcampaign-backend/internal/service"
    "github.com/davquint/callcampaign-backend/internal/queue"
    "github.com/davquint/callcampaign-backend/internal/handler"

)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Pick the store backend
	var store repository.CampaignStore
	switch os.Getenv("STORE_BACKEND") {
	case "postgres":
		db.Init()
		store = &repository.PostgresStore{DB: db.DB}
	case "redis":
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		key := os.Getenv("REDIS_KEY")
		if key == "" {
			key = "callcampaign:campaigns"
		}
		redisStore, err := repository.NewRedisStore(addr, key)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		store = redisStore
	default:
		log.Println("⚠️ STORE_BACKEND not set, keeping campaigns in memory")
		store = repository.NewMemoryStore()
	}

	// Queue: RabbitMQ when configured, in-memory otherwise
	var q queue.Queue
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(amqpURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
	} else {
		memQueue := queue.NewInMemoryQueue()
		queue.StartStatusEventSubscriber(memQueue)
		q = memQueue
	}

	campaignService := &service.CampaignService{
		Store: store,
		Queue: q,
	}

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
	}

    campaignHandler := handler.NewCampaignHandler(campaignService)

	// Periodic reconciliation keeps statuses honest between requests
	interval := 60 * time.Second
	if raw := os.Getenv("RECONCILE_INTERVAL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			interval = time.Duration(secs) * time.Second
		}
	}
	scheduler := service.NewScheduler(campaignService, interval)
	scheduler.Start()
	defer scheduler.Stop()

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Put("/campaigns/{id}", campaignController.UpdateCampaign)
	r.Post("/campaigns/{id}/finish", campaignController.FinishCampaign)
	r.Delete("/campaigns/{id}", campaignController.DeleteCampaign)
	r.Post("/campaigns/{id}/people", campaignController.AddPerson)
	r.Delete("/campaigns/{id}/people/{personID}", campaignController.RemovePerson)
    r.Get("/campaigns/{id}", campaignHandler.GetCampaignDetailHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
