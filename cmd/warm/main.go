package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/app"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/config"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
)

// warmAction prefetches bars and overviews of every symbol into the shared
// cache. Only a redis cache outlives this process.
func warmAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"), cmd.StringSlice("env-file")...)
	if err != nil {
		return err
	}

	if cfg.Cache.Backend != "redis" {
		return fmt.Errorf("cache backend is %q, warming only makes sense with redis", cfg.Cache.Backend)
	}

	zlog, err := logger.NewLoggerWithConfig(cfg.Log)
	if err != nil {
		return err
	}

	a, err := app.Build(ctx, cfg, zlog)
	if err != nil {
		return err
	}
	defer a.Close()

	symbols := cmd.StringSlice("symbols")
	if len(symbols) == 0 {
		symbols = cfg.Scheduler.Watchlist
	}

	bar := progressbar.NewOptions(len(symbols)+1,
		progressbar.OptionSetDescription("Warming cache"),
		progressbar.OptionShowCount(),
	)

	var failed []string

	if _, err := a.Service.RefreshMarketSummary(ctx); err != nil {
		failed = append(failed, "market summary: "+err.Error())
	}

	_ = bar.Add(1)

	for _, symbol := range symbols {
		bar.Describe("Warming " + symbol)

		if _, err := a.Service.StockData(ctx, symbol); err != nil {
			failed = append(failed, symbol+": "+err.Error())
		}

		_ = bar.Add(1)
	}

	_ = bar.Finish()
	fmt.Println()

	for _, f := range failed {
		fmt.Println("failed:", f)
	}

	fmt.Printf("Warmed %d of %d entries\n", len(symbols)+1-len(failed), len(symbols)+1)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "warm",
		Usage: "Prefetch market data into the redis cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Dotenv files loaded before the environment",
				Value: []string{".env"},
			},
			&cli.StringSliceFlag{
				Name:    "symbols",
				Aliases: []string{"s"},
				Usage:   "Symbols to warm. Defaults to the configured watch list",
			},
		},
		Action: warmAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
