package services

import (
	"log"

	"github.com/meilisearch/meilisearch-go"

	"github.com/studyscribe/studyscribe-api/internal/config"
	"github.com/studyscribe/studyscribe-api/internal/models"
)

// SearchService maintains two Meilisearch indexes: one over subjects and
// one over resources (including text extracted from uploaded PDFs).
// Indexing is best effort; the store stays authoritative.
type SearchService struct {
	client *meilisearch.Client
}

// subjectDoc and resourceDoc are the flattened index shapes.
type subjectDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
}

type resourceDoc struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subject_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	ContentText string `json:"content_text"`
	CreatedAt   int64  `json:"created_at"`
}

func NewSearchService(cfg *config.Config) *SearchService {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeiliURL,
		APIKey: cfg.MeiliAPIKey,
	})

	// Ensure resources index exists (best effort)
	_, err := client.GetIndex("resources")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "resources",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch resources index: %v", err)
		}

		_, err = client.Index("resources").UpdateFilterableAttributes(&[]string{"subject_id", "type"})
		if err != nil {
			log.Printf("Failed to update resources filterable attributes: %v", err)
		}

		_, err = client.Index("resources").UpdateSortableAttributes(&[]string{"created_at"})
		if err != nil {
			log.Printf("Failed to update resources sortable attributes: %v", err)
		}

		_, err = client.Index("resources").UpdateSearchableAttributes(&[]string{"name", "content", "content_text"})
		if err != nil {
			log.Printf("Failed to update resources searchable attributes: %v", err)
		}
	}

	// Ensure subjects index exists (best effort)
	_, err = client.GetIndex("subjects")
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        "subjects",
			PrimaryKey: "id",
		})
		if err != nil {
			log.Printf("Failed to create meilisearch subjects index: %v", err)
		}

		_, err = client.Index("subjects").UpdateSearchableAttributes(&[]string{"name", "description", "schedule"})
		if err != nil {
			log.Printf("Failed to update subjects searchable attributes: %v", err)
		}
	}

	return &SearchService{client: client}
}

func (s *SearchService) IndexSubject(subject models.Subject) error {
	doc := subjectDoc{
		ID:          subject.ID,
		Name:        subject.Name,
		Description: subject.Description,
		Schedule:    subject.Schedule,
	}
	_, err := s.client.Index("subjects").AddDocuments([]subjectDoc{doc})
	return err
}

func (s *SearchService) DeleteSubject(subjectID string) error {
	_, err := s.client.Index("subjects").DeleteDocument(subjectID)
	return err
}

// IndexResource indexes a resource together with any text extracted from
// its file.
func (s *SearchService) IndexResource(r models.Resource, extractedText string) error {
	doc := resourceDoc{
		ID:          r.ID,
		SubjectID:   r.SubjectID,
		Name:        r.Name,
		Type:        r.Type,
		URL:         r.URL,
		Content:     r.Content,
		ContentText: extractedText,
		CreatedAt:   r.CreatedAt.Unix(),
	}
	_, err := s.client.Index("resources").AddDocuments([]resourceDoc{doc})
	return err
}

func (s *SearchService) DeleteResource(resourceID string) error {
	_, err := s.client.Index("resources").DeleteDocument(resourceID)
	return err
}

func (s *SearchService) SearchResources(query string, subjectID string) (*meilisearch.SearchResponse, error) {
	request := &meilisearch.SearchRequest{
		Limit: 20,
	}

	if subjectID != "" {
		request.Filter = "subject_id = " + subjectID
	}

	return s.client.Index("resources").Search(query, request)
}

func (s *SearchService) SearchSubjects(query string) (*meilisearch.SearchResponse, error) {
	return s.client.Index("subjects").Search(query, &meilisearch.SearchRequest{
		Limit: 20,
	})
}
