package matching

import (
	"time"

	"github.com/google/uuid"

	"github.com/0xcro3dile/faqbot-go/internal/domain/entities"
)

// DefaultThreshold is the similarity a match must exceed to be answered.
const DefaultThreshold = 0.2

// Fixed replies.
const (
	NotReadyReply      = "Chatbot is not ready or no data available."
	NoMatchReply       = "Sorry, I don't have an answer for that."
	InternalErrorReply = "Internal server error."
)

// Outcome classifies how a query was resolved. None of them is an error.
type Outcome string

const (
	OutcomeAnswered   Outcome = "answered"
	OutcomeNotReady   Outcome = "not_ready"
	OutcomeEmptyQuery Outcome = "empty_query"
	OutcomeNoMatch    Outcome = "no_match"
)

// Result is the full decision for one query.
type Result struct {
	Outcome         Outcome `json:"outcome"`
	Reply           string  `json:"reply"`
	Index           int     `json:"index"` // -1 when no row was scored
	Confidence      float64 `json:"confidence"`
	MatchedQuestion string  `json:"matched_question,omitempty"`
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	threshold  float64
	generation string
	newMatcher func([]SparseVector) Matcher
}

// WithThreshold overrides DefaultThreshold.
func WithThreshold(t float64) Option {
	return func(o *engineOptions) { o.threshold = t }
}

// WithGeneration sets the engine identifier instead of a random UUID.
func WithGeneration(id string) Option {
	return func(o *engineOptions) { o.generation = id }
}

// WithMatcher replaces the brute-force scan with another index.
func WithMatcher(fn func([]SparseVector) Matcher) Option {
	return func(o *engineOptions) { o.newMatcher = fn }
}

// Engine answers queries against one immutable corpus. It holds no mutable
// state, so a single Engine can serve any number of goroutines.
type Engine struct {
	corpus     *Corpus
	vectorizer *Vectorizer
	matcher    Matcher
	threshold  float64
	generation string
	builtAt    time.Time
}

// New builds the corpus, vocabulary and document-term matrix. It never
// fails: an empty entries slice gives an engine that always replies
// NotReadyReply.
func New(entries []entities.QAEntry, opts ...Option) *Engine {
	o := engineOptions{
		threshold: DefaultThreshold,
		newMatcher: func(rows []SparseVector) Matcher {
			return NewBruteForce(rows)
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.generation == "" {
		o.generation = uuid.NewString()
	}

	corpus := NewCorpus(entries)
	vectorizer, rows := Fit(corpus.questions)

	return &Engine{
		corpus:     corpus,
		vectorizer: vectorizer,
		matcher:    o.newMatcher(rows),
		threshold:  o.threshold,
		generation: o.generation,
		builtAt:    time.Now(),
	}
}

// Answer returns the matched answer or one of the fallback replies.
func (e *Engine) Answer(query string) string {
	return e.Evaluate(query).Reply
}

// Evaluate runs normalize → vectorize → match → threshold and reports how
// the reply was chosen.
func (e *Engine) Evaluate(query string) Result {
	if e.corpus.Len() == 0 {
		return Result{Outcome: OutcomeNotReady, Reply: NotReadyReply, Index: -1}
	}

	normalized := Normalize(query)
	if normalized == "" {
		return Result{Outcome: OutcomeEmptyQuery, Reply: NotReadyReply, Index: -1}
	}

	idx, score := e.matcher.Match(e.vectorizer.Transform(normalized))
	if idx < 0 {
		return Result{Outcome: OutcomeNoMatch, Reply: NoMatchReply, Index: -1}
	}

	res := Result{
		Index:           idx,
		Confidence:      score,
		MatchedQuestion: e.corpus.Question(idx),
	}
	if Confident(score, e.threshold) {
		res.Outcome, res.Reply = OutcomeAnswered, e.corpus.Answer(idx)
	} else {
		res.Outcome, res.Reply = OutcomeNoMatch, NoMatchReply
	}
	return res
}

// Ready reports whether the engine has any entries.
func (e *Engine) Ready() bool {
	return e.corpus.Len() > 0
}

// Size returns the number of corpus entries.
func (e *Engine) Size() int {
	return e.corpus.Len()
}

// VocabularySize returns the number of distinct terms.
func (e *Engine) VocabularySize() int {
	return e.vectorizer.Vocabulary().Len()
}

// Threshold returns the confidence threshold.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Generation identifies this build of the engine.
func (e *Engine) Generation() string {
	return e.generation
}

// BuiltAt returns when the engine was built.
func (e *Engine) BuiltAt() time.Time {
	return e.builtAt
}
