package service

import (
	"fmt"
	"log"

	"anoa.com/askhub/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const questionIndex = "questions"

// SearchService mirrors questions into Meilisearch for full-text search.
type SearchService interface {
	IndexQuestion(question *model.Question) error
	DeleteQuestion(id string) error
	Search(query string, limit int) ([]SearchHit, error)
}

type SearchHit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	if s.client == nil {
		return
	}

	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        questionIndex,
		PrimaryKey: "id",
	})
	if err != nil {
		// Index may already exist; Meilisearch reports that as an error.
		log.Printf("Meilisearch index init: %v", err)
	}

	_, err = s.client.Index(questionIndex).UpdateSearchableAttributes(&[]string{"title", "content", "tags"})
	if err != nil {
		log.Printf("Failed to update searchable attributes: %v", err)
	}
}

func (s *searchService) IndexQuestion(question *model.Question) error {
	if s.client == nil {
		return nil
	}

	tags := make([]string, 0, len(question.Tags))
	for _, t := range question.Tags {
		tags = append(tags, t.Name)
	}

	doc := map[string]any{
		"id":    question.ID.String(),
		"title": question.Title,
		// Index plain text, not markup.
		"content":    s.sanitizer.Sanitize(question.Content),
		"tags":       tags,
		"created_at": question.CreatedAt.Unix(),
	}

	_, err := s.client.Index(questionIndex).AddDocuments([]map[string]any{doc}, nil)
	if err != nil {
		return fmt.Errorf("failed to index question %s: %w", question.ID, err)
	}
	return nil
}

func (s *searchService) DeleteQuestion(id string) error {
	if s.client == nil {
		return nil
	}
	_, err := s.client.Index(questionIndex).DeleteDocument(id)
	return err
}

func (s *searchService) Search(query string, limit int) ([]SearchHit, error) {
	if s.client == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	resp, err := s.client.Index(questionIndex).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	return decodeSearchHits(resp.Hits)
}

func decodeSearchHits(raw meilisearch.Hits) ([]SearchHit, error) {
	var hits []SearchHit
	if err := raw.Decode(&hits); err != nil {
		return nil, fmt.Errorf("failed to decode search hits: %w", err)
	}
	return hits, nil
}
