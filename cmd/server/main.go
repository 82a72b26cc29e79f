package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/studyscribe/studyscribe-api/internal/config"
	"github.com/studyscribe/studyscribe-api/internal/router"
	"github.com/studyscribe/studyscribe-api/internal/services"
	"github.com/studyscribe/studyscribe-api/internal/storage"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	// Open durable storage
	kv, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer kv.Close()

	// File storage for uploaded resources
	files, err := services.NewFileService(cfg)
	if err != nil {
		log.Printf("Warning: Failed to initialize file service: %v", err)
		files = nil
	}

	// Load application state
	var opener store.ResourceOpener
	if files != nil {
		opener = files
	}
	st := store.New(kv, opener)
	st.Load(context.Background())
	log.Printf("Loaded %d subjects, %d study plans, %d chat messages",
		len(st.Subjects()), len(st.StudyPlans()), len(st.ChatHistory()))

	// Setup router and start server
	r := router.Setup(kv, st, files, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func openStorage(cfg *config.Config) (storage.KV, error) {
	switch cfg.StorageBackend {
	case "redis":
		return storage.NewRedis(cfg.RedisURL)
	case "memory":
		return storage.NewMemory(), nil
	default:
		return storage.NewSQLite(cfg.SQLitePath)
	}
}
