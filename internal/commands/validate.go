package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/0xcro3dile/faqbot-go/internal/domain/matching"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the dataset and report accepted and rejected records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closeSource, err := a.openSource()
			if err != nil {
				return err
			}
			defer closeSource()

			ds, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}
			eng := matching.New(ds.Entries, matching.WithThreshold(a.cfg.Matching.Threshold))

			out := cmd.OutOrStdout()
			ok := color.New(color.FgGreen).SprintFunc()
			bad := color.New(color.FgRed).SprintFunc()

			fmt.Fprintf(out, "source:     %s\n", ds.Source)
			fmt.Fprintf(out, "accepted:   %s\n", ok(len(ds.Entries)))
			fmt.Fprintf(out, "rejected:   %s\n", bad(len(ds.Rejected)))
			fmt.Fprintf(out, "vocabulary: %d\n", eng.VocabularySize())
			for _, r := range ds.Rejected {
				fmt.Fprintf(out, "  record %d: %v\n", r.Position, r.Reason)
			}
			if !eng.Ready() {
				fmt.Fprintln(out, bad("dataset has no usable records; every query will get the not-ready reply"))
			}
			return nil
		},
	}
}
