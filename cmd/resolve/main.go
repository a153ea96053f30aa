package main

import (
	"context"
	"facility-distance-service/internal/adapters/export"
	"facility-distance-service/internal/app"
	"facility-distance-service/internal/config"
	"facility-distance-service/internal/domain"
	"facility-distance-service/internal/platform/obs"
	"facility-distance-service/internal/services"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	lat      float64
	lng      float64
	category string
	mode     string
	xlsx     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "driving distances from an origin to every facility of a category",
		Long: `
resolve queries the configured routing service for the driving distance and
duration from an origin to each police station, civil defence station or
hospital in the facility catalog, and prints the results as JSON.
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.Flags().Changed("mode"))
		},
	}

	cmd.Flags().Float64Var(&opts.lat, "lat", 25.1308, "origin latitude")
	cmd.Flags().Float64Var(&opts.lng, "lng", 55.4172, "origin longitude")
	cmd.Flags().StringVar(&opts.category, "category", string(domain.CategoryFire), "police, fire or hospital")
	cmd.Flags().StringVar(&opts.mode, "mode", config.ModeSequential, "sequential or matrix")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "also write results to this spreadsheet")

	return cmd
}

func run(ctx context.Context, opts options, modeSet bool) error {
	config.LoadDotEnv()
	obs.Setup(config.Get("LOG_LEVEL", "warn"), os.Stderr)

	cfg, err := config.FromEnv()
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return err
	}
	if modeSet {
		cfg.Mode = opts.mode
		if err := cfg.Validate(); err != nil {
			log.WithError(err).Error("invalid configuration")
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	ctx = obs.WithRequestID(ctx, uuid.NewString())

	var resolverOpts []services.ResolverOption
	if isatty.IsTerminal(os.Stderr.Fd()) {
		var bar *progressbar.ProgressBar
		resolverOpts = append(resolverOpts, services.WithProgress(func(done, total int, facility string) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Resolving "+string(domain.ParseCategory(opts.category))),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
			_ = bar.Set(done)
		}))
	}

	resolver, closeFn, err := app.Build(cfg, resolverOpts...)
	if err != nil {
		log.WithError(err).Error("startup failed")
		return err
	}
	defer closeFn()

	origin := domain.Coordinates{Lat: opts.lat, Lng: opts.lng}
	agg, err := resolver.Resolve(ctx, origin, opts.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "distance resolution failed: %v\n", err)
		return err
	}

	payload, err := services.EncodeAggregate(agg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "distance resolution failed: %v\n", err)
		return err
	}
	fmt.Println(string(payload))

	if opts.xlsx != "" {
		if err := export.WriteXLSX(opts.xlsx, agg); err != nil {
			log.WithError(err).Error("spreadsheet export failed")
			return err
		}
		log.WithField("path", opts.xlsx).Info("spreadsheet written")
	}

	return nil
}
