package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the saved session",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the selected date, game dates and theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			nav, err := a.navigation(ctx)
			if err != nil {
				return err
			}
			if err := nav.Reset(ctx, a.now(), a.loc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %q cleared; selected date is %s.\n", a.cfg.Session.Name, nav.SelectedDate())
			return nil
		},
	})
	return cmd
}
