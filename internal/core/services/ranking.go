package services

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/versus/api/internal/core/domain"
)

const (
	weightFreshness   = 0.25
	weightAffinity    = 0.30
	weightPopularity  = 0.15
	weightControversy = 0.20
	weightRandom      = 0.10

	defaultAffinity    = 0.5
	defaultMaxVotes    = 100
	freshnessFloor     = 0.1
	freshnessDecayDays = 30
)

// FeedRanker orders candidate questions by a weighted blend of freshness,
// category affinity, popularity, controversy and a random exploration term.
// The random source is injectable so tests can pin the ordering.
type FeedRanker struct {
	mu         sync.Mutex
	rng        *rand.Rand
	affinities map[uuid.UUID]float64
	maxVotes   int64
	now        func() time.Time
}

type RankerOption func(*FeedRanker)

// WithAffinities sets the per-category weight map used for the affinity
// factor. Categories absent from the map fall back to 0.5.
func WithAffinities(affinities map[uuid.UUID]float64) RankerOption {
	return func(r *FeedRanker) { r.affinities = affinities }
}

// WithMaxVotes sets the normalization ceiling for the popularity factor.
func WithMaxVotes(maxVotes int64) RankerOption {
	return func(r *FeedRanker) { r.maxVotes = maxVotes }
}

func WithRand(rng *rand.Rand) RankerOption {
	return func(r *FeedRanker) { r.rng = rng }
}

func WithClock(now func() time.Time) RankerOption {
	return func(r *FeedRanker) { r.now = now }
}

func NewFeedRanker(opts ...RankerOption) *FeedRanker {
	r := &FeedRanker{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		maxVotes: defaultMaxVotes,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Score computes the ranking score for a single question:
// 0.25*freshness + 0.30*affinity + 0.15*popularity + 0.20*controversy + 0.10*random.
func (r *FeedRanker) Score(q *domain.Question) float64 {
	return weightFreshness*freshness(q.CreatedAt, r.now()) +
		weightAffinity*r.affinity(q.CategoryID) +
		weightPopularity*popularity(q.TotalVotes, r.maxVotes) +
		weightControversy*Controversy(q.Options, q.TotalVotes) +
		weightRandom*r.random()
}

// Rank returns the questions ordered by score, highest first. The input
// slice is not modified.
func (r *FeedRanker) Rank(questions []*domain.Question) []*domain.Question {
	type scored struct {
		question *domain.Question
		score    float64
	}

	entries := make([]scored, len(questions))
	for i, q := range questions {
		entries[i] = scored{question: q, score: r.Score(q)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})

	ranked := make([]*domain.Question, len(entries))
	for i, e := range entries {
		ranked[i] = e.question
	}
	return ranked
}

func (r *FeedRanker) random() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *FeedRanker) affinity(categoryID uuid.UUID) float64 {
	if r.affinities == nil {
		return defaultAffinity
	}
	if a, ok := r.affinities[categoryID]; ok {
		return a
	}
	return defaultAffinity
}

// freshness is 1.0 for the first 24 hours, then decays logarithmically to
// the floor over roughly 30 days.
func freshness(createdAt, now time.Time) float64 {
	hours := now.Sub(createdAt).Hours()
	if hours < 24 {
		return 1.0
	}
	days := hours / 24
	return math.Max(freshnessFloor, 1.0-math.Log(days)/math.Log(freshnessDecayDays)*0.9)
}

// popularity log-compresses the long tail of vote counts into [0,1].
func popularity(totalVotes, maxVotes int64) float64 {
	if maxVotes <= 0 {
		return 0
	}
	return math.Log(float64(totalVotes)+1) / math.Log(float64(maxVotes)+1)
}

// Controversy measures how even the vote split is: 1.0 at a perfect 50/50,
// 0.0 when unanimous, 0.5 for questions with no votes yet.
func Controversy(options []domain.Option, totalVotes int64) float64 {
	if totalVotes == 0 || len(options) == 0 {
		return 0.5
	}
	var top int64
	for _, o := range options {
		if o.VoteCount > top {
			top = o.VoteCount
		}
	}
	topShare := float64(top) / float64(totalVotes)
	return 1 - math.Abs(0.5-topShare)*2
}
