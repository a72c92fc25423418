// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces.
package usecases

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/0xcro3dile/faqbot-go/internal/domain/matching"
	"github.com/0xcro3dile/faqbot-go/internal/domain/ports"
)

// CorpusUseCase owns the current matching engine and rebuilds it from the
// corpus source. Readers never block: a rebuilt engine is published with an
// atomic swap and in-flight queries finish on the engine they started with.
type CorpusUseCase struct {
	source ports.CorpusSource
	opts   []matching.Option
	log    zerolog.Logger
	engine atomic.Pointer[matching.Engine]
}

// NewCorpusUseCase creates a CorpusUseCase. Until Load is called it serves an
// empty engine. opts are applied to every engine it builds.
func NewCorpusUseCase(source ports.CorpusSource, log zerolog.Logger, opts ...matching.Option) *CorpusUseCase {
	uc := &CorpusUseCase{
		source: source,
		opts:   opts,
		log:    log.With().Str("component", "corpus").Logger(),
	}
	uc.engine.Store(matching.New(nil, opts...))
	return uc
}

// Current returns the engine serving queries right now. Never nil.
func (uc *CorpusUseCase) Current() *matching.Engine {
	return uc.engine.Load()
}

// Load performs the initial load. A source failure is logged and leaves an
// empty engine, which answers every query with the not-ready reply.
func (uc *CorpusUseCase) Load(ctx context.Context) *matching.Engine {
	eng, err := uc.build(ctx)
	if err != nil {
		uc.log.Error().Err(err).Str("source", uc.source.Describe()).Msg("dataset unavailable, serving empty corpus")
		eng = matching.New(nil, uc.opts...)
	}
	uc.engine.Store(eng)
	return eng
}

// Reload rebuilds the engine. On failure the previous engine keeps serving
// and the error is returned.
func (uc *CorpusUseCase) Reload(ctx context.Context) error {
	eng, err := uc.build(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Str("generation", uc.Current().Generation()).Msg("reload failed, keeping previous corpus")
		return err
	}
	uc.engine.Store(eng)
	return nil
}

func (uc *CorpusUseCase) build(ctx context.Context) (*matching.Engine, error) {
	ds, err := uc.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, r := range ds.Rejected {
		uc.log.Warn().Int("position", r.Position).Err(r.Reason).Msg("dropped dataset record")
	}

	eng := matching.New(ds.Entries, uc.opts...)
	uc.log.Info().
		Str("source", ds.Source).
		Int("entries", eng.Size()).
		Int("rejected", len(ds.Rejected)).
		Int("vocabulary", eng.VocabularySize()).
		Str("generation", eng.Generation()).
		Msg("corpus loaded")
	return eng, nil
}

// Watch reloads the corpus whenever the file at path changes. Bursts of
// events closer together than debounce trigger a single reload. Watch
// blocks until ctx is done or the watcher stops.
func (uc *CorpusUseCase) Watch(ctx context.Context, watcher ports.FileWatcher, path string, debounce time.Duration) error {
	events, err := watcher.Watch(ctx, filepath.Dir(path))
	if err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			uc.log.Debug().Str("path", ev.Path).Stringer("op", ev.Operation).Msg("dataset changed")
			timer.Reset(debounce)
		case <-timer.C:
			_ = uc.Reload(ctx)
		}
	}
}
