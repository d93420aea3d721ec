package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"sleepcalc/internal/calc"
	"sleepcalc/internal/config"
	"sleepcalc/internal/form"
	"sleepcalc/internal/logger"
	"sleepcalc/internal/theme"
	"sleepcalc/internal/web"
)

const appVersion = "0.2.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "sleepcalc",
		Short: "Sleep cycle calculator (CLI or web)",
		Long: "Suggests bedtimes for a wake time, or wake times for a bedtime,\n" +
			"so that you wake at the end of a full 90 minute sleep cycle.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, v)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if cfg.Port > 0 {
				return serve(cmd.Context(), cfg, log, out)
			}
			return runCalc(cmd.Context(), cfg, log, out)
		},
	}

	cmd.Version = appVersion
	cmd.SetVersionTemplate("sleepcalc v{{.Version}}\n")
	cmd.SetOut(out)

	pf := cmd.PersistentFlags()
	pf.String("log-level", "error", "Log level (debug|info|warn|error)")
	pf.String("log-format", "console", "Log format (console|json)")
	pf.String("theme-backend", config.BackendFile, "Where the theme is stored (file|redis|none)")
	pf.String("theme-file", "", "Theme preferences file (default: user config dir)")
	pf.String("redis-addr", "localhost:6379", "Redis address for --theme-backend=redis")
	pf.String("redis-password", "", "Redis password")
	pf.Int("redis-db", 0, "Redis database number")

	f := cmd.Flags()
	f.StringP("mode", "m", string(form.DefaultMode), "bedtime: anchor is your wake time; waketime: anchor is your bedtime")
	f.StringP("time", "t", form.DefaultTime.String(), "Anchor time HH:MM")
	f.Int("fall-asleep", form.DefaultFallAsleep, "Minutes it takes you to fall asleep")
	f.Int("sleep-cycles", form.DefaultSleepCycles, "Preferred number of sleep cycles (highlighted)")
	f.Bool("json", false, "Print results as JSON")
	f.Int("port", 0, "Run web UI on this port (e.g. 8484)")
	f.Int("rate-limit", 120, "Web requests per minute per client IP (0 = unlimited)")

	cmd.AddCommand(newServeCmd(v, out), newThemeCmd(v, out))
	return cmd
}

func newServeCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, v)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			if cfg.Port == 0 {
				return fmt.Errorf("--port must be > 0")
			}
			return serve(cmd.Context(), cfg, log, out)
		},
	}
	cmd.Flags().Int("port", 8484, "Port to listen on")
	cmd.Flags().Int("rate-limit", 120, "Requests per minute per client IP (0 = unlimited)")
	cmd.Flags().String("log-level", "info", "Log level (debug|info|warn|error)")
	cmd.Flags().Duration("theme-cache-ttl", 5*time.Second, "How long the server trusts its cached theme")
	return cmd
}

func newThemeCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [name]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: theme.Names,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, v)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			themes, closeStore, err := openThemes(cmd.Context(), cfg, log, false)
			if err != nil {
				return err
			}
			defer closeStore()

			if len(args) == 1 {
				if err := themes.Set(cmd.Context(), args[0]); err != nil {
					return err
				}
			}
			printThemes(out, themes.Current())
			return nil
		},
	}
}

// setup resolves configuration for cmd and builds the logger.
func setup(cmd *cobra.Command, v *viper.Viper) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v, cmd.Flags())
	if err != nil {
		return cfg, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func runCalc(ctx context.Context, cfg config.Config, log *zap.Logger, out io.Writer) error {
	st, err := stateFromConfig(cfg)
	if err != nil {
		return err
	}

	themes, closeStore, err := openThemes(ctx, cfg, log, false)
	if err != nil {
		// The theme only colours the output; never fail a calculation over it.
		log.Warn("theme unavailable, using default", zap.Error(err))
		themes, closeStore = theme.NewManager(nil, log), func() {}
	}
	defer closeStore()

	entries := calc.Calculate(st.Request())
	log.Debug("calculated",
		zap.String("mode", string(st.Mode)),
		zap.Stringer("anchor", st.Time),
		zap.Int("fall_asleep", st.FallAsleep),
		zap.Int("results", len(entries)),
	)

	if cfg.JSON {
		return printJSON(out, st, entries)
	}
	printCLI(out, st, entries, themes.Current())
	return nil
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger, out io.Writer) error {
	themes, closeStore, err := openThemes(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer closeStore()

	printListenAddrs(out, cfg.Port)
	srv := web.New(themes, log, web.Options{Version: appVersion, RateLimit: cfg.RateLimit})
	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", cfg.Port))
}

// stateFromConfig validates CLI input. Unlike the web form, out of range
// numbers are rejected rather than clamped.
func stateFromConfig(cfg config.Config) (form.State, error) {
	mode, err := calc.ParseMode(cfg.Mode)
	if err != nil {
		return form.State{}, err
	}
	anchor, err := calc.ParseClock(cfg.Time)
	if err != nil {
		return form.State{}, fmt.Errorf("--time: %w", err)
	}
	if b := form.BoundsFor(form.FieldFallAsleep); cfg.FallAsleep < b.Min || cfg.FallAsleep > b.Max {
		return form.State{}, fmt.Errorf("--fall-asleep must be between %d and %d", b.Min, b.Max)
	}
	if b := form.BoundsFor(form.FieldSleepCycles); cfg.SleepCycles < b.Min || cfg.SleepCycles > b.Max {
		return form.State{}, fmt.Errorf("--sleep-cycles must be between %d and %d", b.Min, b.Max)
	}
	return form.State{
		Mode:        mode,
		Time:        anchor,
		FallAsleep:  cfg.FallAsleep,
		SleepCycles: cfg.SleepCycles,
	}, nil
}
