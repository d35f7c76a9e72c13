package services

import (
	"context"
	"log"
	"strings"

	"triplog/internal/models/db_models"
	"triplog/internal/repositories"
	"triplog/pkg/utils"

	"github.com/google/uuid"
)

type EmbeddingServiceInterface interface {
	// IndexContent computes embeddings for every non-blank text channel
	// of one content row in a single batched call and stores them.
	IndexContent(ctx context.Context, contentID uuid.UUID) error

	// ReindexMissing indexes contents that have never been embedded.
	// Per-item failures are collected; the batch keeps going.
	ReindexMissing(ctx context.Context, limit int) (int, map[uuid.UUID]error, error)
}

type EmbeddingService struct {
	embedder    utils.EmbeddingClientInterface
	contentRepo repositories.ContentRepository
}

func NewEmbeddingService(
	embedder utils.EmbeddingClientInterface,
	contentRepo repositories.ContentRepository,
) EmbeddingServiceInterface {
	return &EmbeddingService{
		embedder:    embedder,
		contentRepo: contentRepo,
	}
}

func (s *EmbeddingService) IndexContent(ctx context.Context, contentID uuid.UUID) error {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		log.Printf("Error fetching content %s: %v", contentID, err)
		return utils.ErrDatabaseError
	}
	if content == nil {
		return utils.ErrContentNotFound
	}

	return s.indexOne(ctx, content)
}

func (s *EmbeddingService) ReindexMissing(ctx context.Context, limit int) (int, map[uuid.UUID]error, error) {
	contents, err := s.contentRepo.ListMissingEmbeddings(ctx, limit)
	if err != nil {
		log.Printf("Error listing contents missing embeddings: %v", err)
		return 0, nil, utils.ErrDatabaseError
	}

	indexed := 0
	failures := make(map[uuid.UUID]error)
	for i := range contents {
		if err := s.indexOne(ctx, &contents[i]); err != nil {
			failures[contents[i].ID] = err
			continue
		}
		indexed++
	}
	return indexed, failures, nil
}

func (s *EmbeddingService) indexOne(ctx context.Context, content *db_models.Content) error {
	// Blank fields stay null rather than getting a meaningless vector.
	texts := make([]string, 0, 4)
	order := make([]int, 0, 4) // 0 title, 1 raw, 2 notes, 3 extraction
	for idx, text := range []string{content.Title, content.RawText, content.UserNotes, content.ExtractionText} {
		if strings.TrimSpace(text) == "" {
			continue
		}
		texts = append(texts, text)
		order = append(order, idx)
	}
	if len(texts) == 0 {
		// Nothing to embed, but the row must still leave the missing
		// set or ReindexMissing would re-select it forever.
		if err := s.contentRepo.UpdateEmbeddings(ctx, content.ID, repositories.ChannelVectors{}); err != nil {
			log.Printf("Error marking blank content %s indexed: %v", content.ID, err)
			return utils.ErrDatabaseError
		}
		return nil
	}

	vectors, err := s.embedder.GetEmbeddings(ctx, texts)
	if err != nil {
		log.Printf("Error embedding content %s: %v", content.ID, err)
		return utils.ErrEmbeddingFailure
	}

	var update repositories.ChannelVectors
	for i, idx := range order {
		v := vectors[i]
		switch idx {
		case 0:
			update.Title = &v
		case 1:
			update.RawText = &v
		case 2:
			update.Notes = &v
		case 3:
			update.Extraction = &v
		}
	}

	if err := s.contentRepo.UpdateEmbeddings(ctx, content.ID, update); err != nil {
		log.Printf("Error storing embeddings for content %s: %v", content.ID, err)
		return utils.ErrDatabaseError
	}
	return nil
}
