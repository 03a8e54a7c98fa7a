// Command metrixdemo wires a small Cockpit/Panel tree, a
// TelemetryDriver, synthetic traffic, and a Prometheus exporter to
// exercise the metrix pipeline end to end. It is an example consumer,
// not part of the library's public API surface.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/G-Research/metrix/internal/metrixlog"
	"github.com/G-Research/metrix/internal/metrixutil"
	"github.com/G-Research/metrix/pkg/metrix/driver"
	"github.com/G-Research/metrix/pkg/metrixexport"
)

const (
	flagConfig       = "config"
	flagListenAddr   = "listen-addr"
	flagTickInterval = "tick-interval"
	flagDrainPerTick = "drain-per-tick"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrixdemo",
		Short: "Runs a sample metrix pipeline and exports it over HTTP for Prometheus to scrape.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(loadConfig())
		},
	}
	cmd.Flags().String(flagConfig, "", "path to an optional YAML config file overriding the defaults")
	cmd.Flags().String(flagListenAddr, "", "address to serve /metrics on")
	cmd.Flags().Duration(flagTickInterval, 0, "driver tick interval")
	cmd.Flags().Int(flagDrainPerTick, 0, "max observations drained per processor per tick")
	_ = viper.BindPFlags(cmd.Flags())
	return cmd
}

func loadConfig() Config {
	cfg := defaultConfig()
	if path := viper.GetString(flagConfig); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			metrixlog.Warnf("could not read config file %s: %v", path, err)
		} else if err := viper.Unmarshal(&cfg); err != nil {
			metrixlog.Warnf("could not parse config file %s: %v", path, err)
		}
	}
	if v := viper.GetString(flagListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := viper.GetDuration(flagTickInterval); v != 0 {
		cfg.TickInterval = v
	}
	if v := viper.GetInt(flagDrainPerTick); v != 0 {
		cfg.DrainPerTick = v
	}
	return cfg
}

func run(cfg Config) error {
	clock := metrixutil.RealClock{}

	d := driver.NewBuilder().
		Name("metrixdemo").
		TickInterval(cfg.TickInterval).
		WithStrategy(driver.DrainBounded(cfg.DrainPerTick)).
		WithClock(clock).
		Build()

	tx, proc, _ := buildPipeline(clock, cfg.TickInterval)
	if err := d.AddProcessor(proc); err != nil {
		return errors.Wrap(err, "attaching demo processor to driver")
	}
	d.Start()

	registry := prometheus.NewRegistry()
	registry.MustRegister(metrixexport.NewCollector(cfg.Namespace, d))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	g, ctx := errgroup.WithContext(context.Background())

	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case <-stopSignal:
			return server.Shutdown(context.Background())
		}
	})

	trafficStop := make(chan struct{})
	g.Go(func() error {
		simulateTraffic(tx, trafficStop)
		return nil
	})

	g.Go(func() error {
		metrixlog.Infof("serving metrics on %s/metrics", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "serving /metrics")
		}
		return nil
	})

	err := g.Wait()
	close(trafficStop)
	d.Stop(5 * time.Second)
	return err
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		metrixlog.Errorf("metrixdemo exited: %v", err)
		os.Exit(1)
	}
}
