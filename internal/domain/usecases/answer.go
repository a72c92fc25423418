package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/0xcro3dile/faqbot-go/internal/domain/matching"
	"github.com/0xcro3dile/faqbot-go/internal/domain/ports"
)

// EngineProvider returns the engine to answer with.
type EngineProvider interface {
	Current() *matching.Engine
}

// AnswerUseCase answers user messages against the current engine, with an
// optional result cache in front.
type AnswerUseCase struct {
	engines EngineProvider
	cache   ports.AnswerCache
	ttl     time.Duration
	log     zerolog.Logger
}

// NewAnswerUseCase creates an AnswerUseCase. cache may be nil.
func NewAnswerUseCase(engines EngineProvider, cache ports.AnswerCache, ttl time.Duration, log zerolog.Logger) *AnswerUseCase {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AnswerUseCase{
		engines: engines,
		cache:   cache,
		ttl:     ttl,
		log:     log.With().Str("component", "answer").Logger(),
	}
}

// Answer returns the reply for message.
func (uc *AnswerUseCase) Answer(ctx context.Context, message string) string {
	return uc.Evaluate(ctx, message).Reply
}

// Evaluate resolves message and reports how the reply was chosen.
func (uc *AnswerUseCase) Evaluate(ctx context.Context, message string) matching.Result {
	eng := uc.engines.Current()

	if uc.cache == nil {
		return uc.evaluate(eng, message)
	}

	key := CacheKey(eng.Generation(), matching.Normalize(message))
	if res, ok := uc.lookup(ctx, key); ok {
		return res
	}

	res := uc.evaluate(eng, message)
	if data, err := json.Marshal(res); err == nil {
		if err := uc.cache.Set(ctx, key, data, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Msg("cache set failed")
		}
	}
	return res
}

func (uc *AnswerUseCase) evaluate(eng *matching.Engine, message string) matching.Result {
	res := eng.Evaluate(message)
	uc.log.Debug().
		Str("outcome", string(res.Outcome)).
		Str("matched_question", res.MatchedQuestion).
		Float64("confidence", res.Confidence).
		Msg("evaluated query")
	return res
}

func (uc *AnswerUseCase) lookup(ctx context.Context, key string) (matching.Result, bool) {
	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			uc.log.Warn().Err(err).Msg("cache get failed")
		}
		return matching.Result{}, false
	}

	var res matching.Result
	if err := json.Unmarshal(data, &res); err != nil {
		uc.log.Warn().Err(err).Msg("discarding undecodable cache entry")
		return matching.Result{}, false
	}
	return res, true
}

// CacheKey derives the cache key for a normalized query under one engine
// generation.
func CacheKey(generation, normalized string) string {
	sum := sha256.Sum256([]byte(generation + "|" + normalized))
	return hex.EncodeToString(sum[:])
}
