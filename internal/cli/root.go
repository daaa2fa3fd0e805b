// Package cli is the scoreboard command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appgames "github.com/preston-bernstein/nba-scoreboard/internal/app/games"
	appplayers "github.com/preston-bernstein/nba-scoreboard/internal/app/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/config"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/navigation"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
	"github.com/preston-bernstein/nba-scoreboard/internal/server"
	"github.com/preston-bernstein/nba-scoreboard/internal/store"
	"github.com/preston-bernstein/nba-scoreboard/internal/timeutil"
)

// Build info, set via -ldflags.
var (
	Version   = "dev"
	CommitID  = "unknown"
	BuildDate = "unknown"
)

const (
	serviceName = "nba-scoreboard"
	watchLog    = "watch.log"

	outputTable = "table"
	outputJSON  = "json"
)

// app carries what every command resolves once in PersistentPreRunE.
type app struct {
	cfgFile string
	output  string

	cfg      config.Config
	logger   *slog.Logger
	loc      *time.Location
	api      providers.API
	sessions *store.Sessions

	now    func() time.Time
	newAPI func(cfg config.Config, logger *slog.Logger) providers.API
}

func newApp() *app {
	return &app{
		now: time.Now,
		newAPI: func(cfg config.Config, logger *slog.Logger) providers.API {
			return server.NewAPI(cfg, logger, nil)
		},
	}
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	a := newApp()
	defer a.close()
	return newRootCmd(a).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "scoreboard",
		Short:         "NBA scores, box scores and live updates",
		Long:          `scoreboard shows the NBA games for a date, follows live games and serves the same board over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (default ~/.config/scoreboard/config.yaml)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputTable, "output format: table or json")

	root.AddCommand(
		newGamesCmd(a),
		newGameCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
		newSessionCmd(a),
		newThemeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}
	switch a.output {
	case outputTable, outputJSON:
	default:
		return inputError(fmt.Errorf("unknown output format %q", a.output))
	}

	v := viper.New()
	if err := config.ReadFile(v, a.cfgFile); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	a.cfg = config.Load(v)
	a.loc = timeutil.ResolveLocation(a.cfg.Timezone)

	logCfg := logging.Config{
		Level:   a.cfg.Log.Level,
		Format:  a.cfg.Log.Format,
		File:    a.cfg.Log.File,
		Service: serviceName,
		Version: Version,
		Writer:  cmd.ErrOrStderr(),
	}
	// The terminal UI owns the screen, so its logs always go to a file.
	if cmd.Name() == "watch" && logCfg.File == "" {
		if dir, err := config.DefaultDir(); err == nil {
			logCfg.File = filepath.Join(dir, watchLog)
		}
	}
	a.logger = logging.NewLogger(logCfg)

	if cmd.Name() == "serve" {
		return nil
	}
	a.api = a.newAPI(a.cfg, a.logger)

	sessions, err := store.NewSessions(store.SessionConfig{
		Backend:  a.cfg.Session.Backend,
		Dir:      a.cfg.Session.Dir,
		TTL:      a.cfg.Session.TTL,
		RedisURL: a.cfg.Session.RedisURL,
	})
	if err != nil {
		return fmt.Errorf("session backend: %w", err)
	}
	a.sessions = sessions
	return nil
}

func (a *app) close() {
	if a.sessions == nil {
		return
	}
	if err := a.sessions.Close(); err != nil {
		logging.Warn(a.logger, "session backend close", "err", err)
	}
	a.sessions = nil
}

// navigation opens the named CLI session.
func (a *app) navigation(ctx context.Context) (*navigation.State, error) {
	st, err := a.sessions.Open(a.cfg.Session.Name)
	if err != nil {
		if errors.Is(err, store.ErrInvalidSession) {
			return nil, inputError(fmt.Errorf("session name %q: %w", a.cfg.Session.Name, err))
		}
		return nil, fmt.Errorf("open session: %w", err)
	}
	return navigation.New(ctx, st, a.now(), a.loc, a.logger), nil
}

// selectDate persists date as the selected date when one was given.
func (a *app) selectDate(ctx context.Context, nav *navigation.State, date string) error {
	if date == "" {
		return nil
	}
	if err := nav.SetSelectedDate(ctx, date); err != nil {
		if errors.Is(err, navigation.ErrInvalidDate) {
			return inputError(err)
		}
		return err
	}
	return nil
}

func (a *app) boardService() *appgames.Service {
	return appgames.NewService(a.api, a.logger)
}

func (a *app) boxScoreService() *appplayers.Service {
	return appplayers.NewService(a.api)
}
