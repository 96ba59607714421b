package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

const (
	featuredPoolSize = 50
	featuredMinVotes = 2
)

type featuredService struct {
	questionRepo ports.QuestionRepository
	now          func() time.Time
}

func NewFeaturedService(questionRepo ports.QuestionRepository) ports.FeaturedService {
	return &featuredService{
		questionRepo: questionRepo,
		now:          time.Now,
	}
}

// Featured picks the question of the day from the top-50 by vote count:
// 0.5*controversy + 0.2*(ln(total+1)/10) + 0.3*rotation, where the rotation
// term cycles candidates by UTC epoch day. The pick is stable within a
// calendar day and changes the next, with no stored state.
func (s *featuredService) Featured(ctx context.Context) (*domain.FeaturedQuestion, error) {
	candidates, err := s.questionRepo.TopByVotes(ctx, featuredPoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	dayOfYear := s.now().UTC().Unix() / (24 * 60 * 60)

	best := candidates[0]
	bestScore := -1.0
	for i, q := range candidates {
		if q.TotalVotes < featuredMinVotes || len(q.Options) == 0 {
			continue
		}
		controversy := Controversy(q.Options, q.TotalVotes)
		popularityBoost := math.Log(float64(q.TotalVotes)+1) / 10
		rotation := float64((int64(i)+dayOfYear)%int64(len(candidates))) / float64(len(candidates))

		score := 0.5*controversy + 0.2*popularityBoost + 0.3*rotation
		if score > bestScore {
			bestScore = score
			best = q
		}
	}

	var winner *domain.Option
	for i := range best.Options {
		if winner == nil || best.Options[i].VoteCount > winner.VoteCount {
			winner = &best.Options[i]
		}
	}

	featured := &domain.FeaturedQuestion{
		ID:           best.ID,
		Prompt:       best.Prompt,
		CategoryName: best.CategoryName,
		TotalVotes:   best.TotalVotes,
	}
	if winner != nil {
		featured.WinnerName = winner.Name
		if best.TotalVotes > 0 {
			featured.WinnerPercentage = int(math.Round(float64(winner.VoteCount) / float64(best.TotalVotes) * 100))
		}
	}
	return featured, nil
}
