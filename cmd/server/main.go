package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/rs-patil/cropadvisor/internal/classifier"
	"github.com/rs-patil/cropadvisor/internal/config"
	"github.com/rs-patil/cropadvisor/internal/engine"
	"github.com/rs-patil/cropadvisor/internal/services/gateway"
	"github.com/rs-patil/cropadvisor/internal/services/geocode"
	"github.com/rs-patil/cropadvisor/internal/services/market"
	"github.com/rs-patil/cropadvisor/internal/services/recorder"
	"github.com/rs-patil/cropadvisor/internal/services/soil"
	"github.com/rs-patil/cropadvisor/internal/services/weather"
	"github.com/rs-patil/cropadvisor/pkg/eventbus"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("configuration error")
	}

	log := newLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clf, err := classifier.New()
	if err != nil {
		log.Fatal().Err(err).Msg("load classifier model")
	}

	var bus eventbus.Publisher = eventbus.Nop{}
	if cfg.Mqtt.Enabled {
		mq, err := eventbus.Connect(ctx, cfg.Mqtt.Bus(), log)
		if err != nil {
			// Alerts are best-effort; run without the bus.
			log.Error().Err(err).Msg("event bus unavailable, alerts disabled")
		} else {
			bus = mq
			defer mq.Close()
		}
	}

	var rec *recorder.Recorder
	if cfg.Influx.Enabled {
		rec = recorder.New(cfg.Influx.Sink(), log)
		defer rec.Close()
	}

	var rng *rand.Rand
	if cfg.Engine.MarketSeed != 0 {
		rng = rand.New(rand.NewSource(cfg.Engine.MarketSeed))
	}

	gw := gateway.New(gateway.Deps{
		Classifier:  clf,
		Store:       engine.NewStore(),
		Weather:     weather.New(cfg.Providers.Timeout, cfg.Providers.WeatherCacheTTL, log),
		Soil:        soil.New(cfg.Providers.Timeout, cfg.Providers.SoilCacheTTL, log),
		Geocode:     geocode.New(cfg.Providers.Timeout, cfg.Providers.GeocodeCacheTTL, log),
		Market:      market.New(rng),
		Recorder:    rec,
		Bus:         bus,
		Log:         log,
		TopN:        cfg.Engine.TopN,
		DefaultFarm: cfg.Engine.DefaultFarm,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      gw.Routes(cfg.Server.RateLimit, cfg.Server.RateWindow),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out = zerolog.New(os.Stdout)
	if cfg.Pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return out.Level(level).With().Timestamp().Str("service", "cropadvisor").Logger()
}
