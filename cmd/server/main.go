package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/app"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/config"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/service"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/version"
)

// setup loads the configuration and wires the application.
func setup(ctx context.Context, cmd *cli.Command) (*app.App, error) {
	cfg, err := config.Load(cmd.String("config"), cmd.StringSlice("env-file")...)
	if err != nil {
		return nil, err
	}

	zlog, err := logger.NewLoggerWithConfig(cfg.Log)
	if err != nil {
		return nil, err
	}

	return app.Build(ctx, cfg, zlog)
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer a.Close()
	defer a.Logger.Sync() //nolint:errcheck

	srv, err := a.NewServer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := a.NewScheduler(ctx)
	if a.Config.Scheduler.Enabled {
		if err := sched.Register(); err != nil {
			return err
		}

		sched.Start()
		go sched.RunNow(ctx)
	}

	if err := srv.Start(); err != nil {
		return err
	}

	a.Logger.Info("server started",
		zap.String("addr", srv.Addr()),
		zap.String("version", version.GetVersion()),
		zap.String("bars_provider", a.Config.MarketData.BarsProvider),
		zap.String("cache", a.Config.Cache.Backend),
	)

	<-ctx.Done()
	a.Logger.Info("shutting down")

	shutdownCtx := context.Background()

	if a.Config.Scheduler.Enabled {
		sched.Stop(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func indicatorsAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	period, err := types.ParsePeriod(cmd.String("period"))
	if err != nil {
		return err
	}

	interval, err := types.ParseInterval(cmd.String("interval"))
	if err != nil {
		return err
	}

	set, err := a.Service.Indicators(ctx, cmd.String("symbol"), period, interval)
	if err != nil {
		return err
	}

	if cmd.Bool("latest") {
		return printJSON(set.LatestOnly())
	}

	return printJSON(set)
}

func predictAction(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	fallback, err := service.ParseFallback(cmd.String("fallback"))
	if err != nil {
		return err
	}

	path, err := a.Service.Predict(ctx, cmd.String("symbol"), int(cmd.Int("days")), fallback)
	if err != nil {
		return err
	}

	return printJSON(path)
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := config.Schema()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func main() {
	symbolFlag := &cli.StringFlag{
		Name:     "symbol",
		Aliases:  []string{"s"},
		Usage:    "Ticker symbol",
		Required: true,
	}

	cmd := &cli.Command{
		Name:    "stockapi",
		Usage:   "Stock market data and analysis API",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Dotenv files loaded before the environment (missing files are ignored)",
				Value: []string{".env"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveAction,
			},
			{
				Name:  "indicators",
				Usage: "Print the technical indicators of a symbol",
				Flags: []cli.Flag{
					symbolFlag,
					&cli.StringFlag{
						Name:  "period",
						Usage: "History period (1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max)",
						Value: string(service.DefaultPeriod),
					},
					&cli.StringFlag{
						Name:  "interval",
						Usage: "Bar interval (1m ... 1mo)",
						Value: string(service.DefaultInterval),
					},
					&cli.BoolFlag{
						Name:  "latest",
						Usage: "Print only the latest value of each indicator",
					},
				},
				Action: indicatorsAction,
			},
			{
				Name:  "predict",
				Usage: "Print an illustrative naive price path",
				Flags: []cli.Flag{
					symbolFlag,
					&cli.IntFlag{
						Name:    "days",
						Aliases: []string{"d"},
						Usage:   "Number of days to simulate",
						Value:   7,
					},
					&cli.StringFlag{
						Name:  "fallback",
						Usage: "Set to random_walk to simulate without indicators on short histories",
					},
				},
				Action: predictAction,
			},
			{
				Name:   "config-schema",
				Usage:  "Print the JSON schema of the configuration file",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
