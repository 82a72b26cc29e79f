package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/studyscribe/studyscribe-api/internal/config"
	"github.com/studyscribe/studyscribe-api/internal/models"
	"github.com/studyscribe/studyscribe-api/internal/services"
	"github.com/studyscribe/studyscribe-api/internal/storage"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

// Imports a directory tree into the study organizer. Each top-level
// subdirectory becomes a subject; PDFs inside it are uploaded as pdf
// resources and .txt/.md files become notes.
func main() {
	dir := flag.String("dir", "./subjects", "directory to import subjects from")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	if _, err := os.Stat(*dir); os.IsNotExist(err) {
		log.Fatalf("Subjects directory does not exist: %s", *dir)
	}

	// Open durable storage
	kv, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer kv.Close()

	// Initialize file storage
	files, err := services.NewFileService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize file service: %v", err)
	}

	// Initialize search service
	searchService := services.NewSearchService(cfg)
	log.Println("Meilisearch service initialized")

	st := store.New(kv, files)
	st.Load(context.Background())

	if err := importSubjects(st, files, searchService, *dir); err != nil {
		log.Fatalf("Failed to import subjects: %v", err)
	}

	log.Println("Import completed successfully!")
}

// subjectColors is cycled through for imported subjects.
var subjectColors = []string{"#9B87F5", "#7E69AB", "#6E59A5", "#8B5CF6", "#D6BCFA"}

func importSubjects(st *store.Store, files *services.FileService, search *services.SearchService, baseDir string) error {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	existing := make(map[string]bool)
	for _, subject := range st.Subjects() {
		existing[subject.Name] = true
	}

	ctx := context.Background()
	imported := 0
	skipped := 0
	totalFiles := 0
	importedFiles := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		subjectName := entry.Name()

		// Skip test directories
		if strings.ToLower(subjectName) == "test" {
			skipped++
			continue
		}

		if existing[subjectName] {
			log.Printf("Subject already exists, skipping: %s", subjectName)
			skipped++
			continue
		}

		subject := st.AddSubject(ctx, store.SubjectFields{
			Name:  subjectName,
			Color: subjectColors[imported%len(subjectColors)],
		})

		log.Printf("Imported subject: %s (id: %s)", subjectName, subject.ID)
		imported++

		if err := search.IndexSubject(subject); err != nil {
			log.Printf("Warning: Failed to index subject %s: %v", subjectName, err)
		}

		fileCount, uploadCount := importSubjectFiles(ctx, st, files, search, filepath.Join(baseDir, subjectName), subject.ID)
		totalFiles += fileCount
		importedFiles += uploadCount

		if fileCount > 0 {
			log.Printf("  -> Imported %d/%d files", uploadCount, fileCount)
		}
	}

	log.Printf("\nImport Summary:")
	log.Printf("  Subjects imported: %d", imported)
	log.Printf("  Subjects skipped: %d", skipped)
	log.Printf("  Files imported: %d/%d", importedFiles, totalFiles)

	return nil
}

func importSubjectFiles(ctx context.Context, st *store.Store, files *services.FileService, search *services.SearchService, subjectDir string, subjectID string) (int, int) {
	totalFiles := 0
	importedFiles := 0

	err := filepath.WalkDir(subjectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files we can't access
		}

		if d.IsDir() {
			return nil // Continue walking
		}

		totalFiles++

		name := d.Name()
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			resource, ok := importPDF(ctx, st, files, path, name, subjectID)
			if !ok {
				return nil
			}
			if err := search.IndexResource(resource, ""); err != nil {
				log.Printf("    Warning: Failed to index %s: %v", name, err)
			}
			importedFiles++

		case ".txt", ".md":
			content, err := os.ReadFile(path)
			if err != nil {
				log.Printf("    Failed to read file %s: %v", path, err)
				return nil
			}
			resource, ok := st.AddResource(ctx, store.ResourceFields{
				Name:      name,
				Type:      models.ResourceNote,
				Content:   string(content),
				SubjectID: subjectID,
			})
			if !ok {
				return nil
			}
			if err := search.IndexResource(resource, resource.Content); err != nil {
				log.Printf("    Warning: Failed to index %s: %v", name, err)
			}
			importedFiles++

		default:
			log.Printf("    Skipping unsupported file: %s", name)
		}

		return nil
	})
	if err != nil {
		log.Printf("  Failed to walk %s: %v", subjectDir, err)
	}

	return totalFiles, importedFiles
}

func importPDF(ctx context.Context, st *store.Store, files *services.FileService, path string, name string, subjectID string) (models.Resource, bool) {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("    Failed to open file %s: %v", path, err)
		return models.Resource{}, false
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		log.Printf("    Failed to stat file %s: %v", path, err)
		return models.Resource{}, false
	}

	key := fmt.Sprintf("%s/%s.pdf", subjectID, uuid.New().String())
	if err := files.Upload(ctx, file, key, fileInfo.Size(), "application/pdf"); err != nil {
		log.Printf("    Failed to upload file %s: %v", path, err)
		return models.Resource{}, false
	}

	resource, ok := st.AddResource(ctx, store.ResourceFields{
		Name:      name,
		Type:      models.ResourcePDF,
		Path:      key,
		SubjectID: subjectID,
	})
	if !ok {
		return models.Resource{}, false
	}
	return resource, true
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
