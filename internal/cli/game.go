package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/prediction"
	"github.com/preston-bernstein/nba-scoreboard/internal/view"
)

const predictionTimeout = 5 * time.Second

func newGameCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "game <id>",
		Short: "Show one game with its box score",
		Long: `Show one game with its box score. Without --date the game's date comes
from the last board listed in this session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			nav, err := a.navigation(ctx)
			if err != nil {
				return err
			}
			g, err := a.boardService().Detail(ctx, nav, args[0], date)
			if err != nil {
				return err
			}
			box, err := a.boxScoreService().BoxScore(ctx, g.ID, g.HomeTeam.Abbreviation, g.VisitorTeam.Abbreviation)
			if err != nil {
				return err
			}
			d := view.NewDetail(g, box, a.fetchPrediction(ctx, g), a.now(), a.loc)
			if a.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			writeDetail(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "date the game is played on (YYYY-MM-DD)")
	return cmd
}

// fetchPrediction runs one gated fetch and waits for it. Failures leave it out.
func (a *app) fetchPrediction(ctx context.Context, g games.Game) *games.WinProbability {
	ctx, cancel := context.WithTimeout(ctx, predictionTimeout)
	defer cancel()

	gate := prediction.NewGate(ctx, a.api, a.logger, nil)
	defer gate.Close()
	if !gate.Update(g) {
		return nil
	}
	gate.Wait()
	return gate.Snapshot().Value
}

func writeDetail(w io.Writer, d view.Detail) {
	fmt.Fprintln(w, d.Header)
	if d.ScoreLine != "" {
		fmt.Fprintln(w, d.ScoreLine)
	} else {
		fmt.Fprintln(w, d.StatusText)
	}
	if d.Prediction != nil {
		fmt.Fprintf(w, "Win probability: %s %s, %s %s\n",
			d.Card.Visitor.Name, d.Prediction.Visitor, d.Card.Home.Name, d.Prediction.Home)
	}

	if len(d.Periods) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		names := make([]string, 0, len(d.Periods))
		visitor := make([]string, 0, len(d.Periods))
		home := make([]string, 0, len(d.Periods))
		for _, p := range d.Periods {
			names = append(names, p.Name)
			visitor = append(visitor, p.Visitor)
			home = append(home, p.Home)
		}
		fmt.Fprintf(tw, "\t%s\t\n", strings.Join(names, "\t"))
		fmt.Fprintf(tw, "%s\t%s\t\n", d.Card.Visitor.Name, strings.Join(visitor, "\t"))
		fmt.Fprintf(tw, "%s\t%s\t\n", d.Card.Home.Name, strings.Join(home, "\t"))
		_ = tw.Flush()
	}

	writePlayers(w, d.Card.Visitor.FullName, d.Visitor)
	writePlayers(w, d.Card.Home.FullName, d.Home)
}

func writePlayers(w io.Writer, team string, rows []view.PlayerRow) {
	fmt.Fprintf(w, "\n%s\n", team)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No player stats.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "PLAYER\tMIN\tPTS\tREB\tAST\tFG\tFG%%\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.Name, r.Min, r.Pts, r.Reb, r.Ast, r.FG, r.FGPct)
	}
	_ = tw.Flush()
}
