package main

import "time"

// Config mirrors the driver's own configuration surface (spec.md §6),
// plus the exporter's listen address. Fields are bindable from
// viper, which in turn is fed from pflag/cobra and an optional YAML
// file, following the teacher's config.LoadConfig convention.
type Config struct {
	ListenAddr   string        `mapstructure:"listenAddr"`
	TickInterval time.Duration `mapstructure:"tickInterval"`
	DrainPerTick int           `mapstructure:"drainPerTick"`
	Namespace    string        `mapstructure:"namespace"`
}

func defaultConfig() Config {
	return Config{
		ListenAddr:   ":9400",
		TickInterval: time.Second,
		DrainPerTick: 256,
		Namespace:    "metrix_demo",
	}
}
