package main

import (
	"context"
	"fmt"
	"os"

	"github.com/preston-bernstein/nba-scoreboard/internal/cli"
)

func main() {
	if os.Getenv("SKIP_SCOREBOARD_RUN") == "1" {
		return
	}
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
