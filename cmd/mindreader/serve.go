package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielpatrickdp/mindreader/internal/metrics"
	"github.com/danielpatrickdp/mindreader/internal/rng"
	"github.com/danielpatrickdp/mindreader/internal/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

// #region command
func newServeCmd(a *app) *cobra.Command {
	var memory bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC predictor service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := a.serve(ctx, !memory); err != nil {
				return a.fail(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&memory, "memory", false, "keep sessions in memory only")
	return cmd
}

// #endregion command

// #region serve
func (a *app) serve(ctx context.Context, persist bool) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	opts := []rpc.Option{rpc.WithMetrics(rec), rpc.WithLogger(a.logger)}
	if a.cfg.Seed != 0 {
		// A fixed seed gives every session the same random stream.
		seed := a.cfg.Seed
		opts = append(opts, rpc.WithSeeder(func() uint64 { return seed }))
	} else {
		opts = append(opts, rpc.WithSeeder(rng.NewSeed))
	}
	if persist {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, rpc.WithStore(store))
	}

	lis, err := net.Listen("tcp", a.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.ListenAddr, err)
	}
	gs := grpc.NewServer()
	rpc.RegisterPredictorServer(gs, rpc.NewServer(opts...))

	var metricsSrv *http.Server
	if a.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		metricsSrv = &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			a.logger.Info("metrics listening", "addr", a.cfg.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server", "error", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("grpc listening", "addr", lis.Addr().String(), "persist", persist)
		errc <- gs.Serve(lis)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("grpc serve: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	gs.GracefulStop()
	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("metrics shutdown", "error", err)
		}
	}
	return nil
}

// #endregion serve
