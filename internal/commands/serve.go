package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xcro3dile/faqbot-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/faqbot-go/internal/domain/ports"
	"github.com/0xcro3dile/faqbot-go/internal/domain/usecases"
	httpserver "github.com/0xcro3dile/faqbot-go/internal/infrastructure/http"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the /ping, /ready and /chat HTTP endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	f := cmd.Flags()
	f.String("addr", "", "listen address (default :5000)")
	f.Bool("watch", true, "reload the dataset file when it changes")
	f.String("cache", "", "answer cache (none, memory, redis)")
	_ = a.v.BindPFlag("server.addr", f.Lookup("addr"))
	_ = a.v.BindPFlag("dataset.watch", f.Lookup("watch"))
	_ = a.v.BindPFlag("cache.driver", f.Lookup("cache"))

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	src, closeSource, err := a.openSource()
	if err != nil {
		return err
	}
	defer closeSource()

	corpus := a.newCorpus(ctx, src)

	answerCache, err := a.openCache(ctx)
	if err != nil {
		return err
	}
	if answerCache != nil {
		defer answerCache.Close()
	}
	answers := usecases.NewAnswerUseCase(corpus, answerCache, a.cfg.Cache.TTL, a.log)

	if err := a.watch(ctx, corpus); err != nil {
		a.log.Warn().Err(err).Msg("dataset hot-reload disabled")
	}

	srv := httpserver.NewServer(answers, corpus, a.log, httpserver.Config{
		Addr:             a.cfg.Server.Addr,
		ReadTimeout:      a.cfg.Server.ReadTimeout,
		WriteTimeout:     a.cfg.Server.WriteTimeout,
		GracefulShutdown: a.cfg.Server.GracefulShutdown,
	})
	return srv.Start(ctx)
}

// watch starts hot-reload for file datasets when enabled. It returns once
// the watcher is running; reloads continue until ctx is done.
func (a *app) watch(ctx context.Context, corpus *usecases.CorpusUseCase) error {
	ds := a.cfg.Dataset
	if ds.Driver != "file" || !ds.Watch {
		return nil
	}

	w, err := filewatcher.NewFSNotifyWatcher(a.log, ds.Path)
	if err != nil {
		return err
	}
	started := make(chan error, 1)
	go func() {
		defer w.Stop()
		err := corpus.Watch(ctx, startNotifier{w, started}, ds.Path, ds.Debounce)
		if err != nil {
			a.log.Warn().Err(err).Msg("dataset watcher stopped")
		}
	}()
	return <-started
}

// startNotifier reports the outcome of the first Watch call so the caller
// can wait for the watcher to be registered.
type startNotifier struct {
	ports.FileWatcher
	started chan<- error
}

func (s startNotifier) Watch(ctx context.Context, dir string) (<-chan ports.FileEvent, error) {
	events, err := s.FileWatcher.Watch(ctx, dir)
	s.started <- err
	return events, err
}
