package quiz

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/wordwise/internal/question"
)

// MaxRunLength caps the number of questions in a basic run.
const MaxRunLength = 10

// Sampler picks random subsets of questions.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler reading from src. Pass a fixed-seed source
// for reproducible runs.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)}
}

// NewSeededSampler returns a Sampler over a PCG source seeded with seed.
func NewSeededSampler(seed uint64) *Sampler {
	return NewSampler(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultSampler returns a Sampler seeded from the current time.
func DefaultSampler() *Sampler {
	return NewSeededSampler(uint64(time.Now().UnixNano()))
}

// Sample returns min(n, len(qs)) distinct questions in random order.
// qs is not modified.
func (s *Sampler) Sample(qs []question.Question, n int) []question.Question {
	pool := make([]question.Question, len(qs))
	copy(pool, qs)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n < 0 {
		n = 0
	}
	if n < len(pool) {
		pool = pool[:n]
	}
	return pool
}

// StartBasicRun starts a session over up to MaxRunLength random questions
// from category. It returns ErrNoQuestions when the category is empty.
func StartBasicRun(bank []question.Question, category string, sampler *Sampler, opts ...Option) (*Session, error) {
	pool := question.FilterByCategory(bank, category)
	if len(pool) == 0 {
		return nil, ErrNoQuestions
	}
	if sampler == nil {
		sampler = DefaultSampler()
	}
	return New(sampler.Sample(pool, MaxRunLength), opts...)
}
