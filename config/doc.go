// Package config loads the settings of a transduce program: the service
// identity, logging, the parallel driver's worker pool and partition policy,
// and telemetry export.
//
// Values come from a config.yml found in the usual locations (or given
// explicitly), then from the environment and an optional .env file. Env keys
// map onto nested keys by underscore, so PARALLEL_WORKERS sets
// parallel.workers.
//
// # Usage
//
//	var cfg config.Config
//	if err := config.LoadConfig("transduce", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config
