package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
	"github.com/versus/api/internal/core/ports"
)

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*domain.Question
	active    []*domain.Question
	top       []*domain.Question
	voted     []*domain.Question
	newest    []*domain.Question
	saved     []*domain.Question
}

func (f *fakeQuestionRepo) Save(_ context.Context, q *domain.Question) error {
	if f.questions == nil {
		f.questions = make(map[uuid.UUID]*domain.Question)
	}
	f.questions[q.ID] = q
	f.saved = append(f.saved, q)
	return nil
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (f *fakeQuestionRepo) ActiveUnseen(_ context.Context, _ string) ([]*domain.Question, error) {
	return f.active, nil
}

func (f *fakeQuestionRepo) TopByVotes(_ context.Context, _ int) ([]*domain.Question, error) {
	return f.top, nil
}

func (f *fakeQuestionRepo) ActiveWithMinVotes(_ context.Context, minVotes int64) ([]*domain.Question, error) {
	var out []*domain.Question
	for _, q := range f.voted {
		if q.TotalVotes >= minVotes {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Newest(_ context.Context, limit int) ([]*domain.Question, error) {
	if len(f.newest) > limit {
		return f.newest[:limit], nil
	}
	return f.newest, nil
}

func (f *fakeQuestionRepo) ByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Question, error) {
	var out []*domain.Question
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeVoteRepo struct {
	hasVoted     bool
	saveErr      error
	saved        *domain.Vote
	vote         *domain.Vote
	recentCounts []ports.QuestionVoteCount
}

func (f *fakeVoteRepo) SaveVote(_ context.Context, vote *domain.Vote) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = vote
	return nil
}

func (f *fakeVoteRepo) HasVoted(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return f.hasVoted, nil
}

func (f *fakeVoteRepo) VoteForSession(_ context.Context, _ uuid.UUID, _ string) (*domain.Vote, error) {
	if f.vote == nil {
		return nil, domain.ErrVoteNotFound
	}
	return f.vote, nil
}

func (f *fakeVoteRepo) CountsSince(_ context.Context, _ time.Time, limit int) ([]ports.QuestionVoteCount, error) {
	if len(f.recentCounts) > limit {
		return f.recentCounts[:limit], nil
	}
	return f.recentCounts, nil
}

type fakeStatsRepo struct {
	voteDays        []time.Time
	votes           []*domain.Vote
	options         []domain.Option
	totalVotes      int64
	skips           int64
	favorite        string
	categoriesVoted int64
	totalCategories int64
	maxDailyVotes   int64
	topCategories   []domain.CategoryCount
}

func (f *fakeStatsRepo) VoteDays(_ context.Context, _ string) ([]time.Time, error) {
	return f.voteDays, nil
}

func (f *fakeStatsRepo) SessionVotes(_ context.Context, _ string) ([]*domain.Vote, error) {
	return f.votes, nil
}

func (f *fakeStatsRepo) OptionsForQuestions(_ context.Context, _ []uuid.UUID) ([]domain.Option, error) {
	return f.options, nil
}

func (f *fakeStatsRepo) CountVotes(_ context.Context, _ string) (int64, error) {
	return f.totalVotes, nil
}

func (f *fakeStatsRepo) CountSkips(_ context.Context, _ string) (int64, error) {
	return f.skips, nil
}

func (f *fakeStatsRepo) FavoriteCategory(_ context.Context, _ string) (string, error) {
	return f.favorite, nil
}

func (f *fakeStatsRepo) DistinctCategoriesVoted(_ context.Context, _ string) (int64, error) {
	return f.categoriesVoted, nil
}

func (f *fakeStatsRepo) CountCategories(_ context.Context) (int64, error) {
	return f.totalCategories, nil
}

func (f *fakeStatsRepo) MaxVotesInOneDay(_ context.Context, _ string) (int64, error) {
	return f.maxDailyVotes, nil
}

func (f *fakeStatsRepo) TopCategories(_ context.Context, _ string, _ int) ([]domain.CategoryCount, error) {
	return f.topCategories, nil
}

func (f *fakeStatsRepo) VotesBefore(_ context.Context, _ string, before time.Time, limit int) ([]*domain.Vote, error) {
	var out []*domain.Vote
	for _, v := range f.votes {
		if before.IsZero() || v.CreatedAt.Before(before) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[string]*domain.Category
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	c, ok := f.categories[slug]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

type fakeReactionRepo struct {
	reactions map[string]*domain.Reaction
	counts    map[string]int64
}

func (f *fakeReactionRepo) Upsert(_ context.Context, r *domain.Reaction) error {
	if f.reactions == nil {
		f.reactions = make(map[string]*domain.Reaction)
	}
	f.reactions[r.SessionID] = r
	return nil
}

func (f *fakeReactionRepo) Counts(_ context.Context, _ uuid.UUID) (map[string]int64, error) {
	return f.counts, nil
}

func (f *fakeReactionRepo) EmojiForSession(_ context.Context, _ uuid.UUID, sessionID string) (string, error) {
	if r, ok := f.reactions[sessionID]; ok {
		return r.Emoji, nil
	}
	return "", nil
}
