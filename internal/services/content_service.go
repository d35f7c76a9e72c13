package services

import (
	"context"
	"log"

	"triplog/internal/models/db_models"
	"triplog/internal/models/request_models"
	"triplog/internal/repositories"
	"triplog/pkg/utils"

	"github.com/google/uuid"
)

type ContentServiceInterface interface {
	CreateContent(ctx context.Context, userID uuid.UUID, req request_models.CreateContentRequest) (*db_models.Content, error)
	GetContent(ctx context.Context, id uuid.UUID) (*db_models.Content, error)
	ListPins(ctx context.Context, contentID uuid.UUID) ([]db_models.Pin, error)
}

type ContentService struct {
	contentRepo repositories.ContentRepository
	pinRepo     repositories.PinRepository
}

func NewContentService(
	contentRepo repositories.ContentRepository,
	pinRepo repositories.PinRepository,
) ContentServiceInterface {
	return &ContentService{
		contentRepo: contentRepo,
		pinRepo:     pinRepo,
	}
}

func (s *ContentService) CreateContent(ctx context.Context, userID uuid.UUID, req request_models.CreateContentRequest) (*db_models.Content, error) {
	content := &db_models.Content{
		TripID:    req.TripID,
		UserID:    userID,
		Title:     req.Title,
		RawText:   req.RawText,
		UserNotes: req.UserNotes,
	}

	if err := s.contentRepo.CreateContent(ctx, content); err != nil {
		log.Printf("Error creating content: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return content, nil
}

func (s *ContentService) GetContent(ctx context.Context, id uuid.UUID) (*db_models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching content: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if content == nil {
		return nil, utils.ErrContentNotFound
	}
	return content, nil
}

func (s *ContentService) ListPins(ctx context.Context, contentID uuid.UUID) ([]db_models.Pin, error) {
	pins, err := s.pinRepo.ListByContentID(ctx, contentID)
	if err != nil {
		log.Printf("Error listing pins: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return pins, nil
}
