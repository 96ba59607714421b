package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
)

type ImpressionRepository interface {
	// Record inserts the impression or updates the existing row's action.
	// A "voted" row is terminal and keeps its action.
	Record(ctx context.Context, questionID uuid.UUID, sessionID string, action domain.ImpressionAction) error
}

type ImpressionService interface {
	MarkSkipped(ctx context.Context, questionID uuid.UUID, sessionID string) error
	MarkShown(ctx context.Context, questionID uuid.UUID, sessionID string) error
}
