// Package main generates the synthetic bank dataset or serves it over HTTP.
//
// Usage:
//
//	datagen [-config dir] [generate|serve]
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/pet-bank-datagen/cmd/httpserver"
	"github.com/go-petr/pet-bank-datagen/internal/datasetservice"
	"github.com/go-petr/pet-bank-datagen/internal/middleware"
	"github.com/go-petr/pet-bank-datagen/pkg/configpkg"

	_ "github.com/lib/pq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configDir := flag.String("config", "./configs", "directory holding app.env")
	flag.Parse()

	config, err := configpkg.Load(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	ctx, stop := signal.NotifyContext(logger.WithContext(context.Background()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd := flag.Arg(0); cmd {
	case "", "generate":
		err = generate(ctx, config)
	case "serve":
		err = serve(ctx, logger, config)
	default:
		logger.Fatal().Str("command", cmd).Msg("unknown command, want generate or serve")
	}

	if err != nil {
		logger.Fatal().Err(err).Send()
	}
}

func generate(ctx context.Context, config configpkg.Config) error {
	l := zerolog.Ctx(ctx)

	res := newResources(config)
	defer res.close(ctx)

	source, err := res.source(ctx)
	if err != nil {
		return err
	}

	sink, err := res.sink(ctx)
	if err != nil {
		return err
	}

	service := datasetservice.New(source)

	ds, stats, err := service.Generate(ctx, datasetservice.ParamsFromConfig(config))
	if err != nil {
		return err
	}

	if err := service.Publish(ctx, sink, ds); err != nil {
		return err
	}

	l.Info().
		Int("clients", len(ds.Clients)).
		Int("accounts", len(ds.Accounts)).
		Int("transactions", len(ds.Transactions)).
		Int("discarded", stats.Discarded()).
		Str("sink", config.Sink).
		Msg("dataset generated")

	return nil
}

func serve(ctx context.Context, logger zerolog.Logger, config configpkg.Config) error {
	server, err := httpserver.New(logger, config)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		logger.Info().Str("address", config.ServerAddress).Msg("DATASET SERVER HAS STARTED")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info().Msg("server stopped")

	return nil
}
