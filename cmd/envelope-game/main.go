package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/lucky-envelopes/internal/envelope-game/console"
	"github.com/radieske/lucky-envelopes/internal/envelope-game/round"
	"github.com/radieske/lucky-envelopes/internal/envelope-game/setup"
	"github.com/radieske/lucky-envelopes/internal/shared/config"
	"github.com/radieske/lucky-envelopes/internal/shared/logger"
	"github.com/radieske/lucky-envelopes/internal/shared/metrics"
	"github.com/radieske/lucky-envelopes/pkg/contracts/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var form setup.Form
	var asJSON bool
	flag.StringVar(&form.Amount, "amount", "500000", "total amount in dong (EQUAL / WEIGHTED_RANDOM)")
	flag.StringVar(&form.Count, "count", "5", "number of envelopes")
	flag.StringVar(&form.Policy, "policy", "WEIGHTED_RANDOM", "EQUAL | WEIGHTED_RANDOM | DENOMINATION_RANDOM")
	flag.StringVar(&form.Bills, "bills", "", `bills in thousands for DENOMINATION_RANDOM, e.g. "500x2, 200x3"`)
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducible rounds (0 = random)")
	flag.BoolVar(&asJSON, "json", false, "deal one round, print it as JSON and exit")
	flag.Parse()

	// Inicializa logger estruturado
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Valida a entrada antes de chamar o allocator
	req, err := form.Request(setup.Limits{MaxEnvelopes: cfg.MaxEnvelopes})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid input: %v\n", err)
		os.Exit(2)
	}

	// Métricas Prometheus por política
	game := metrics.NewGame(prometheus.DefaultRegisterer)
	if cfg.MetricsPort != "" {
		srv := metrics.StartMetricsServer(cfg.MetricsPort, prometheus.DefaultGatherer, nil, func(err error) {
			log.Error("metrics srv", zap.Error(err))
		})
		defer srv.Close()
		log.Info("metrics/health listening", zap.String("addr", srv.Addr))
	}

	dealer := &round.Dealer{
		Log:      log,
		Seed:     cfg.Seed,
		OnDealt:  func(e events.RoundDealt) { game.OnDealt(e.Policy, e.TotalAmount) },
		OnOpened: func(e events.EnvelopeOpened) { game.OnOpened(e.Policy) },
	}

	if asJSON {
		// Imprime o evento da rodada em vez de abrir o jogo interativo
		dealer.OnDealt = func(e events.RoundDealt) {
			game.OnDealt(e.Policy, e.TotalAmount)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(e); err != nil {
				log.Error("encode round", zap.Error(err))
			}
		}
		if _, err := dealer.Deal(req); err != nil {
			log.Fatal("deal", zap.Error(err))
		}
		return
	}

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting game",
		zap.String("policy", string(req.Policy)),
		zap.Int("envelopes", req.EnvelopeCount),
	)
	con := &console.Console{In: os.Stdin, Out: os.Stdout, Log: log, Dealer: dealer}
	if err := con.Run(ctx, req); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("game stopped with error", zap.Error(err))
		return
	}
	log.Info("game finished")
}
