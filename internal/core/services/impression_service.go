package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type impressionService struct {
	repo ports.ImpressionRepository
}

func NewImpressionService(repo ports.ImpressionRepository) ports.ImpressionService {
	return &impressionService{repo: repo}
}

// MarkSkipped upserts the impression as "skipped". Calling it twice leaves a
// single row; a "voted" row is left untouched.
func (s *impressionService) MarkSkipped(ctx context.Context, questionID uuid.UUID, sessionID string) error {
	if err := s.repo.Record(ctx, questionID, sessionID, domain.ActionSkipped); err != nil {
		return fmt.Errorf("failed to record skip: %w", err)
	}
	return nil
}

func (s *impressionService) MarkShown(ctx context.Context, questionID uuid.UUID, sessionID string) error {
	if err := s.repo.Record(ctx, questionID, sessionID, domain.ActionShown); err != nil {
		return fmt.Errorf("failed to record shown impression: %w", err)
	}
	return nil
}
