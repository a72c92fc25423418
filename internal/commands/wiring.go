package commands

import (
	"context"
	"fmt"

	"github.com/0xcro3dile/faqbot-go/internal/adapters/cache"
	"github.com/0xcro3dile/faqbot-go/internal/adapters/corpus"
	"github.com/0xcro3dile/faqbot-go/internal/domain/matching"
	"github.com/0xcro3dile/faqbot-go/internal/domain/ports"
	"github.com/0xcro3dile/faqbot-go/internal/domain/usecases"
)

// openSource builds the configured corpus source. The returned func
// releases it.
func (a *app) openSource() (ports.CorpusSource, func(), error) {
	ds := a.cfg.Dataset
	switch ds.Driver {
	case "file":
		return corpus.NewFileSource(ds.Path), func() {}, nil
	case "sqlite3", "postgres":
		src, err := corpus.OpenSQLSource(ds.Driver, ds.DSN, ds.Table)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown dataset driver %q", ds.Driver)
}

// openCache builds the configured answer cache, or nil when disabled.
func (a *app) openCache(ctx context.Context) (ports.AnswerCache, error) {
	c := a.cfg.Cache
	switch c.Driver {
	case "", "none":
		return nil, nil
	case "memory":
		return cache.NewMemoryCache(c.MaxEntries, c.TTL), nil
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		})
	}
	return nil, fmt.Errorf("unknown cache driver %q", c.Driver)
}

// newCorpus loads the dataset into a CorpusUseCase.
func (a *app) newCorpus(ctx context.Context, src ports.CorpusSource) *usecases.CorpusUseCase {
	uc := usecases.NewCorpusUseCase(src, a.log, matching.WithThreshold(a.cfg.Matching.Threshold))
	uc.Load(ctx)
	return uc
}
