package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/studyscribe/studyscribe-api/internal/config"
	"github.com/studyscribe/studyscribe-api/internal/models"
	"github.com/studyscribe/studyscribe-api/internal/services"
	"github.com/studyscribe/studyscribe-api/internal/storage"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

// Rebuilds the Meilisearch indexes from the stored application state.
// Run after changing index settings or recovering a search instance.
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

	st := store.New(kv, nil)
	st.Load(context.Background())

	// Initialize search service
	searchService := services.NewSearchService(cfg)
	log.Println("Meilisearch service initialized")

	// File storage and Tika are optional here. Without them PDF
	// resources are indexed by name only.
	files, err := services.NewFileService(cfg)
	if err != nil {
		log.Printf("Warning: Failed to initialize file service: %v", err)
		files = nil
	}
	tika := services.NewTextExtractionService(cfg)

	subjects := st.Subjects()
	log.Printf("Reindexing %d subjects", len(subjects))

	totalResources := 0
	for _, subject := range subjects {
		if err := searchService.IndexSubject(subject); err != nil {
			log.Printf("Failed to index subject %s: %v", subject.ID, err)
			continue
		}

		for _, resource := range subject.Resources {
			text := extractedText(files, tika, resource)
			if err := searchService.IndexResource(resource, text); err != nil {
				log.Printf("Failed to index resource %s: %v", resource.ID, err)
				continue
			}
			totalResources++
		}
	}

	log.Printf("Reindexed %d subjects and %d resources", len(subjects), totalResources)
}

func extractedText(files *services.FileService, tika *services.TextExtractionService, r models.Resource) string {
	if r.Type == models.ResourceNote {
		return r.Content
	}
	if r.Type != models.ResourcePDF || r.Path == "" || files == nil {
		return ""
	}

	ctx := context.Background()
	obj, err := files.Download(ctx, r.Path)
	if err != nil {
		log.Printf("Failed to download %s: %v", r.Path, err)
		return ""
	}
	defer obj.Close()

	text, err := tika.ExtractText(ctx, obj)
	if err != nil {
		log.Printf("Failed to extract text from %s: %v", r.Path, err)
		return ""
	}
	return text
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
