package cli

import (
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-scoreboard/internal/tui"
)

func newWatchCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the interactive scoreboard",
		Long:  `Open the interactive scoreboard. Live games update in place while it is open.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			nav, err := a.navigation(ctx)
			if err != nil {
				return err
			}
			if err := a.selectDate(ctx, nav, date); err != nil {
				return err
			}
			return tui.Run(ctx, tui.Deps{
				API:          a.api,
				Nav:          nav,
				Logger:       a.logger,
				Location:     a.loc,
				PollInterval: a.cfg.PollInterval,
				Now:          a.now,
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "date to open (YYYY-MM-DD)")
	return cmd
}
