package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/0xcro3dile/faqbot-go/internal/domain/matching"
	"github.com/0xcro3dile/faqbot-go/internal/domain/usecases"
)

var (
	replyColor   = color.New(color.FgGreen).SprintFunc()
	fallbackColor = color.New(color.FgYellow).SprintFunc()
	labelColor   = color.New(color.Faint).SprintFunc()
)

func newAskCommand(a *app) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSource, err := a.openSource()
			if err != nil {
				return err
			}
			defer closeSource()

			corpus := a.newCorpus(cmd.Context(), src)
			answers := usecases.NewAnswerUseCase(corpus, nil, 0, a.log)
			res := answers.Evaluate(cmd.Context(), strings.Join(args, " "))

			out := cmd.OutOrStdout()
			if res.Outcome == matching.OutcomeAnswered {
				fmt.Fprintln(out, replyColor(res.Reply))
			} else {
				fmt.Fprintln(out, fallbackColor(res.Reply))
			}

			if explain {
				fmt.Fprintf(out, "%s %s\n", labelColor("outcome:"), res.Outcome)
				fmt.Fprintf(out, "%s %.4f\n", labelColor("confidence:"), res.Confidence)
				if res.MatchedQuestion != "" {
					fmt.Fprintf(out, "%s %s\n", labelColor("matched question:"), res.MatchedQuestion)
				}
				fmt.Fprintf(out, "%s %.4f\n", labelColor("threshold:"), corpus.Current().Threshold())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&explain, "explain", false, "print outcome, confidence and matched question")
	return cmd
}
