package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/prediction"
	"github.com/preston-bernstein/nba-scoreboard/internal/view"
)

type boardOutput struct {
	Date  string      `json:"date"`
	Cards []view.Card `json:"cards"`
}

func newGamesCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "games",
		Short: "List the games for the selected date",
		Long:  `List the games for the selected date. --date changes the selected date for later commands too.`,
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
			selected, list, err := a.boardService().LoadBoard(ctx, nav)
			if err != nil {
				return err
			}
			out := boardOutput{Date: selected, Cards: view.Cards(list, a.now(), a.loc)}
			a.fillCardPredictions(ctx, list, out.Cards)
			if a.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			writeBoard(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "date to show (YYYY-MM-DD)")
	return cmd
}

func writeBoard(w io.Writer, b boardOutput) {
	fmt.Fprintf(w, "Games for %s\n\n", b.Date)
	if len(b.Cards) == 0 {
		fmt.Fprintln(w, "No games scheduled.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tVISITOR\t\tHOME\t\tSTATUS\tWIN PROBABILITY\n")
	for _, c := range b.Cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, sideName(c.Visitor), c.Visitor.Score, sideName(c.Home), c.Home.Score, c.Label, predictionText(c))
	}
	_ = tw.Flush()
}

func sideName(s view.Side) string {
	if s.Winner {
		return s.Name + " *"
	}
	return s.Name
}

// fillCardPredictions runs one gated fetch per upcoming card and waits for
// all of them. cards must be built from list in order.
func (a *app) fillCardPredictions(ctx context.Context, list []games.Game, cards []view.Card) {
	ctx, cancel := context.WithTimeout(ctx, predictionTimeout)
	defer cancel()

	set := prediction.NewSet(ctx, a.api, a.logger, nil)
	defer set.Close()
	board := make([]*games.Game, len(list))
	for i := range list {
		board[i] = &list[i]
	}
	if set.Sync(board) == 0 {
		return
	}
	set.Wait()
	for i := range cards {
		if snap, ok := set.Snapshot(cards[i].ID); ok && snap.Value != nil {
			cards[i].Prediction = view.FormatPrediction(*snap.Value)
		}
	}
}

func predictionText(c view.Card) string {
	if c.Prediction == nil {
		return ""
	}
	return fmt.Sprintf("%s %s %s %s", c.Visitor.Name, c.Prediction.Visitor, c.Home.Name, c.Prediction.Home)
}
