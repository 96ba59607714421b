package ports

import (
	"context"

	"github.com/versus/api/internal/core/domain"
)

type FeedPage struct {
	Questions []*domain.Question `json:"questions"`
	Remaining int                `json:"remaining"`
}

type FeedService interface {
	Feed(ctx context.Context, sessionID string) (*FeedPage, error)
}
