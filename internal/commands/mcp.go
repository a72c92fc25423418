package commands

import (
	"github.com/spf13/cobra"

	"github.com/0xcro3dile/faqbot-go/internal/adapters/mcptool"
	"github.com/0xcro3dile/faqbot-go/internal/domain/usecases"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the answer tool over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSource, err := a.openSource()
			if err != nil {
				return err
			}
			defer closeSource()

			ctx := cmd.Context()
			corpus := a.newCorpus(ctx, src)
			if err := a.watch(ctx, corpus); err != nil {
				a.log.Warn().Err(err).Msg("dataset hot-reload disabled")
			}

			answerCache, err := a.openCache(ctx)
			if err != nil {
				return err
			}
			if answerCache != nil {
				defer answerCache.Close()
			}

			answers := usecases.NewAnswerUseCase(corpus, answerCache, a.cfg.Cache.TTL, a.log)
			return mcptool.ServeStdio(mcptool.NewServer(answers, a.version, a.log))
		},
	}
}
